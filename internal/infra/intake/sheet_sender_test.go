package intake

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boulevard/config"
	"boulevard/internal/domain/entity"
	"boulevard/internal/domain/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPayload() *entity.OrderPayload {
	return &entity.OrderPayload{
		OrderID:      "order-1",
		CustomerName: "Sara",
		Address:      "12 Nile St, Cairo",
		Phone:        "01069847640",
		Lines: []entity.OrderLine{
			{
				ProductName: "plain light",
				Weight:      "quarter-kilo",
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("125"),
				LineTotal:   decimal.RequireFromString("250"),
			},
		},
		GrandTotal:  decimal.RequireFromString("250"),
		SubmittedAt: time.Now(),
	}
}

func TestSheetSender_SuccessBodyIsAccepted(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer server.Close()

	sender := NewSheetSender(server.URL, config.FieldMapping{}, time.Second, testLogger())
	require.NoError(t, sender.Send(context.Background(), testPayload()))

	assert.Equal(t, "Sara", received["customerName"])
	assert.Equal(t, "12 Nile St, Cairo", received["address"])
	assert.Equal(t, "01069847640", received["phone"])
	assert.InDelta(t, 250.0, received["totalAmount"], 0.0001)

	items, ok := received["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "plain light", item["product"])
	assert.Equal(t, "quarter-kilo", item["weight"])
	assert.InDelta(t, 2.0, item["quantity"], 0.0001)
	assert.InDelta(t, 125.0, item["price"], 0.0001)
	assert.InDelta(t, 250.0, item["total"], 0.0001)
}

func TestSheetSender_CustomFieldMapping(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer server.Close()

	mapping := config.FieldMapping{
		CustomerName: "client",
		GrandTotal:   "grand_total",
	}
	sender := NewSheetSender(server.URL, mapping, time.Second, testLogger())
	require.NoError(t, sender.Send(context.Background(), testPayload()))

	assert.Equal(t, "Sara", received["client"])
	assert.InDelta(t, 250.0, received["grand_total"], 0.0001)
	// Unmapped fields keep their defaults.
	assert.Equal(t, "01069847640", received["phone"])
}

func TestSheetSender_FailureBodyIsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"error","message":"sheet is full"}`))
	}))
	defer server.Close()

	sender := NewSheetSender(server.URL, config.FieldMapping{}, time.Second, testLogger())
	err := sender.Send(context.Background(), testPayload())

	var rejected *service.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "sheet is full", rejected.Reason)
}

func TestSheetSender_NonSuccessStatusIsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sender := NewSheetSender(server.URL, config.FieldMapping{}, time.Second, testLogger())
	err := sender.Send(context.Background(), testPayload())

	var rejected *service.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusBadGateway, rejected.StatusCode)
}

func TestSheetSender_UnreachableEndpointIsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Port is released, connection will be refused.

	sender := NewSheetSender(server.URL, config.FieldMapping{}, time.Second, testLogger())
	err := sender.Send(context.Background(), testPayload())

	require.Error(t, err)
	var rejected *service.RejectedError
	assert.False(t, errors.As(err, &rejected), "transport failure must not classify as rejection")
}

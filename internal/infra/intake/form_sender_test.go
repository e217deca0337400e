package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boulevard/internal/domain/entity"
	"boulevard/internal/domain/service"
)

func TestFormSender_PostsURLEncodedFields(t *testing.T) {
	var received url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		received = r.PostForm
	}))
	defer server.Close()

	sender := NewFormSender(server.URL, "order-form", " EGP", time.Second, testLogger())
	require.NoError(t, sender.Send(context.Background(), testPayload()))

	assert.Equal(t, "order-form", received.Get("form-name"))
	assert.Equal(t, "Sara", received.Get("name"))
	assert.Equal(t, "12 Nile St, Cairo", received.Get("address"))
	assert.Equal(t, "01069847640", received.Get("phone"))
	assert.Equal(t, "250 EGP", received.Get("total-price"))

	var lines []entity.OrderLine
	require.NoError(t, json.Unmarshal([]byte(received.Get("cart-details")), &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, "plain light", lines[0].ProductName)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestFormSender_DefaultsFormName(t *testing.T) {
	var received url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		received = r.PostForm
	}))
	defer server.Close()

	sender := NewFormSender(server.URL, "", "", time.Second, testLogger())
	require.NoError(t, sender.Send(context.Background(), testPayload()))

	assert.Equal(t, "order-form", received.Get("form-name"))
}

func TestFormSender_NonSuccessStatusIsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	sender := NewFormSender(server.URL, "order-form", "", time.Second, testLogger())
	err := sender.Send(context.Background(), testPayload())

	var rejected *service.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusNotFound, rejected.StatusCode)
}

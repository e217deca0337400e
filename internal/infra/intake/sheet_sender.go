// Package intake delivers completed orders to the external intake endpoint.
package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"boulevard/config"
	"boulevard/internal/domain/entity"
	"boulevard/internal/domain/service"
)

const defaultTimeout = 30 * time.Second

// sheetSender posts orders as JSON to a spreadsheet webhook (an Apps Script
// deployment). The script answers 200 even for logical failures, so success
// is detected from the body: {"result": "success"}. Field names are
// configurable because deployed scripts differ.
type sheetSender struct {
	endpoint   string
	fields     config.FieldMapping
	httpClient *http.Client
	logger     *slog.Logger
}

// sheetResponse is the body contract of the webhook.
type sheetResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// NewSheetSender creates an OrderSender for a spreadsheet webhook.
func NewSheetSender(endpoint string, fields config.FieldMapping, timeout time.Duration, logger *slog.Logger) service.OrderSender {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &sheetSender{
		endpoint:   endpoint,
		fields:     applyFieldDefaults(fields),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func applyFieldDefaults(fields config.FieldMapping) config.FieldMapping {
	if fields.CustomerName == "" {
		fields.CustomerName = "customerName"
	}
	if fields.Address == "" {
		fields.Address = "address"
	}
	if fields.Phone == "" {
		fields.Phone = "phone"
	}
	if fields.Items == "" {
		fields.Items = "items"
	}
	if fields.GrandTotal == "" {
		fields.GrandTotal = "totalAmount"
	}

	return fields
}

func (s *sheetSender) Send(ctx context.Context, payload *entity.OrderPayload) error {
	items := make([]map[string]any, 0, len(payload.Lines))
	for _, line := range payload.Lines {
		items = append(items, map[string]any{
			"product":  line.ProductName,
			"weight":   string(line.Weight),
			"quantity": line.Quantity,
			"price":    line.UnitPrice.InexactFloat64(),
			"total":    line.LineTotal.InexactFloat64(),
		})
	}

	body, err := json.Marshal(map[string]any{
		s.fields.CustomerName: payload.CustomerName,
		s.fields.Address:      payload.Address,
		s.fields.Phone:        payload.Phone,
		s.fields.Items:        items,
		s.fields.GrandTotal:   payload.GrandTotal.InexactFloat64(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	s.logger.Info("[Intake] Sending order to sheet webhook",
		slog.String("endpoint", s.endpoint),
		slog.String("order_id", payload.OrderID),
		slog.Int("line_count", len(payload.Lines)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "post order to sheet webhook failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read sheet webhook response failed")
	}

	// A response was received, so from here on every failure is a rejection,
	// not a transport error.
	var parsed sheetResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		parsed = sheetResponse{}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &service.RejectedError{StatusCode: resp.StatusCode, Reason: parsed.Message}
	}
	if parsed.Result != "success" {
		return &service.RejectedError{StatusCode: resp.StatusCode, Reason: parsed.Message}
	}

	s.logger.Info("[Intake] Order accepted by sheet webhook",
		slog.String("order_id", payload.OrderID),
	)

	return nil
}

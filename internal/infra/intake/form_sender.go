package intake

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"boulevard/internal/domain/entity"
	"boulevard/internal/domain/service"
)

// formSender posts orders as an urlencoded form submission to a static form
// host (the Netlify Forms shape). The host has no body contract, so any 2xx
// counts as accepted. Cart lines travel as one indented JSON string field so
// they stay readable in the host's dashboard.
type formSender struct {
	endpoint       string
	formName       string
	currencySuffix string
	httpClient     *http.Client
	logger         *slog.Logger
}

// NewFormSender creates an OrderSender for a static form backend.
func NewFormSender(endpoint, formName, currencySuffix string, timeout time.Duration, logger *slog.Logger) service.OrderSender {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if formName == "" {
		formName = "order-form"
	}

	return &formSender{
		endpoint:       endpoint,
		formName:       formName,
		currencySuffix: currencySuffix,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
	}
}

func (s *formSender) Send(ctx context.Context, payload *entity.OrderPayload) error {
	cartDetails, err := json.MarshalIndent(payload.Lines, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	form := url.Values{}
	form.Set("form-name", s.formName)
	form.Set("name", payload.CustomerName)
	form.Set("address", payload.Address)
	form.Set("phone", payload.Phone)
	form.Set("cart-details", string(cartDetails))
	form.Set("total-price", payload.GrandTotal.String()+s.currencySuffix)

	s.logger.Info("[Intake] Sending order to form backend",
		slog.String("endpoint", s.endpoint),
		slog.String("order_id", payload.OrderID),
		slog.Int("line_count", len(payload.Lines)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "post order to form backend failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &service.RejectedError{StatusCode: resp.StatusCode}
	}

	s.logger.Info("[Intake] Order accepted by form backend",
		slog.String("order_id", payload.OrderID),
	)

	return nil
}

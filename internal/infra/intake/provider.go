package intake

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"boulevard/config"
	"boulevard/internal/domain/constants"
	"boulevard/internal/domain/entity"
	"boulevard/internal/domain/service"
)

// noopSender logs and accepts every order. Used in development when no
// intake backend is wired up yet.
type noopSender struct {
	logger *slog.Logger
}

func (s *noopSender) Send(ctx context.Context, payload *entity.OrderPayload) error {
	s.logger.Info("[NoopIntake] Order accepted locally",
		slog.String("order_id", payload.OrderID),
		slog.String("customer", payload.CustomerName),
		slog.String("grand_total", payload.GrandTotal.String()),
	)

	return nil
}

// SenderParams holds dependencies for OrderSender, injected by Fx
type SenderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewOrderSender creates an OrderSender based on configuration
func NewOrderSender(params SenderParams) (service.OrderSender, error) {
	cfg := params.Config.OrderIntake
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.IntakeProviderNoop {
		logger.Info("Order intake not configured, using no-op sender")

		return &noopSender{logger: logger}, nil
	}

	switch cfg.Provider {
	case constants.IntakeProviderSheet:
		if cfg.Endpoint == "" {
			return nil, errors.New("endpoint is required for sheet provider")
		}
		logger.Info("Using sheet webhook order intake",
			slog.String("endpoint", cfg.Endpoint),
		)

		return NewSheetSender(cfg.Endpoint, cfg.FieldMapping, cfg.Timeout, logger), nil

	case constants.IntakeProviderForm:
		if cfg.Endpoint == "" {
			return nil, errors.New("endpoint is required for form provider")
		}
		logger.Info("Using form backend order intake",
			slog.String("endpoint", cfg.Endpoint),
			slog.String("form_name", cfg.FormName),
		)

		return NewFormSender(cfg.Endpoint, cfg.FormName, cfg.CurrencySuffix, cfg.Timeout, logger), nil

	default:
		return nil, errors.Errorf("unknown order intake provider: %s", cfg.Provider)
	}
}

// Module provides the order intake FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewOrderSender),
)

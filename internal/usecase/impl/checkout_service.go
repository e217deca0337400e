package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/fx"

	"boulevard/internal/domain/entity"
	domainerrors "boulevard/internal/domain/errors"
	"boulevard/internal/domain/pricing"
	"boulevard/internal/domain/service"
	"boulevard/internal/errors"
	"boulevard/internal/usecase"
)

type checkoutService struct {
	cart     usecase.CartUsecase
	sender   service.OrderSender
	validate *validator.Validate
	logger   *slog.Logger

	// inFlight is the sole concurrency control over submission: while a
	// request is out, repeated Submit calls return immediately without
	// re-sending. There is no queueing of a second attempt.
	inFlight atomic.Bool
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	Cart   usecase.CartUsecase
	Sender service.OrderSender
	Logger *slog.Logger
}

// NewCheckoutService creates the order submission pipeline.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		cart:     params.Cart,
		sender:   params.Sender,
		validate: validator.New(),
		logger:   params.Logger,
	}
}

func (s *checkoutService) Submit(ctx context.Context, contact entity.ContactInfo) (*usecase.SubmitResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, domainerrors.ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	// Preconditions: both fail locally, before any network call.
	items := s.cart.Snapshot()
	if len(items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}
	if err := s.validateContact(contact); err != nil {
		return nil, err
	}

	// The payload is a snapshot: cart mutations made while the request is in
	// flight do not affect it.
	payload := buildPayload(contact, items)

	s.logger.Info("Submitting order",
		slog.String("order_id", payload.OrderID),
		slog.Int("line_count", len(payload.Lines)),
		slog.String("grand_total", payload.GrandTotal.String()),
	)

	// The attempt runs to completion even if the caller goes away; the
	// sender's own timeout bounds it.
	sendCtx := context.WithoutCancel(ctx)

	if err := s.sender.Send(sendCtx, payload); err != nil {
		var rejected *service.RejectedError
		if errors.As(err, &rejected) {
			s.logger.Warn("Order rejected by intake endpoint",
				slog.String("order_id", payload.OrderID),
				slog.String("reason", rejected.Reason),
				slog.Int("status", rejected.StatusCode),
			)

			return &usecase.SubmitResult{
				Outcome: usecase.OutcomeRejected,
				OrderID: payload.OrderID,
				Message: rejected.Reason,
			}, nil
		}

		s.logger.Warn("Order submission transport failure",
			slog.String("order_id", payload.OrderID),
			slog.Any("error", err),
		)

		return &usecase.SubmitResult{
			Outcome: usecase.OutcomeTransportFailure,
			OrderID: payload.OrderID,
			Message: "could not reach the order endpoint",
		}, nil
	}

	// Clear only on confirmed success. On rejection or transport failure the
	// cart is untouched so the user can retry without re-entering anything.
	if err := s.cart.Clear(sendCtx); err != nil {
		s.logger.Warn("Clearing cart after successful order failed",
			slog.String("order_id", payload.OrderID),
			slog.Any("error", err),
		)
	}

	s.logger.Info("Order submitted",
		slog.String("order_id", payload.OrderID),
	)

	return &usecase.SubmitResult{
		Outcome: usecase.OutcomeSuccess,
		OrderID: payload.OrderID,
	}, nil
}

// validateContact enforces the contact invariants: non-empty name and
// address, phone of exactly 11 digits.
func (s *checkoutService) validateContact(contact entity.ContactInfo) error {
	err := s.validate.Struct(contact)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, strings.ToLower(fe.Field())+": "+fe.Tag())
		}

		return domainerrors.ErrInvalidContact.WithDetails(strings.Join(details, "; "))
	}

	return domainerrors.ErrInvalidContact.WithDetails(err.Error())
}

func buildPayload(contact entity.ContactInfo, items []entity.LineItem) *entity.OrderPayload {
	lines := make([]entity.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, entity.OrderLine{
			ProductName: item.Product.Name,
			Weight:      item.Weight,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
		})
	}

	return &entity.OrderPayload{
		OrderID:      uuid.New().String(),
		CustomerName: contact.Name,
		Address:      contact.Address,
		Phone:        contact.Phone,
		Lines:        lines,
		GrandTotal:   pricing.CartTotal(items),
		SubmittedAt:  time.Now().UTC(),
	}
}

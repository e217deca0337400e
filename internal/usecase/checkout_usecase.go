package usecase

import (
	"context"

	"boulevard/internal/domain/entity"
)

// Outcome is the terminal state of one submission attempt.
type Outcome string

const (
	// OutcomeSuccess: the endpoint confirmed the order; the cart has been
	// cleared.
	OutcomeSuccess Outcome = "success"

	// OutcomeRejected: the endpoint responded but refused the order; cart and
	// contact form are preserved for a manual retry.
	OutcomeRejected Outcome = "rejected"

	// OutcomeTransportFailure: no response was received; cart and contact
	// form are preserved for a manual retry.
	OutcomeTransportFailure Outcome = "transport_failure"
)

// SubmitResult reports how a submission attempt ended.
type SubmitResult struct {
	Outcome Outcome `json:"outcome"`
	OrderID string  `json:"order_id"`
	Message string  `json:"message,omitempty"` // endpoint-supplied reason on rejection
}

// CheckoutUsecase drives one order submission: Idle to Submitting and back.
// Precondition failures (empty cart, invalid contact) and the busy guard
// surface as AppErrors and never issue a network call; once a request is
// sent the attempt runs to completion and ends in one of the three outcomes.
type CheckoutUsecase interface {
	Submit(ctx context.Context, contact entity.ContactInfo) (*SubmitResult, error)
}

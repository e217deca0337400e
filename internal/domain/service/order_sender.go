// Package service defines the external collaborator ports of the domain.
package service

import (
	"context"
	"fmt"

	"boulevard/internal/domain/entity"
)

// RejectedError reports that the intake endpoint was reached and responded,
// but signalled logical failure (non-success status or an explicit failure
// indicator in the body). Any other non-nil Send error is a transport
// failure: no response was received, so the outcome is retryable.
type RejectedError struct {
	StatusCode int    // HTTP status of the response, 0 if unknown
	Reason     string // endpoint-supplied message, may be empty
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("order rejected by intake endpoint (status %d)", e.StatusCode)
	}

	return fmt.Sprintf("order rejected by intake endpoint: %s", e.Reason)
}

// OrderSender delivers one order payload to the external intake endpoint in a
// single request. No retries: the caller surfaces failures and lets the user
// re-trigger manually.
type OrderSender interface {
	// Send serializes and posts the payload. It returns nil on confirmed
	// success, *RejectedError when the endpoint refused the order, and any
	// other error when no response was received.
	Send(ctx context.Context, payload *entity.OrderPayload) error
}

package impl

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boulevard/internal/domain/entity"
	domainerrors "boulevard/internal/domain/errors"
	"boulevard/internal/domain/service"
	"boulevard/internal/usecase"
)

// fakeSender records payloads and returns a configured error. When blocking,
// Send parks until released so tests can observe the in-flight guard.
type fakeSender struct {
	mu       sync.Mutex
	payloads []*entity.OrderPayload
	err      error

	started chan struct{}
	release chan struct{}
}

func (s *fakeSender) Send(ctx context.Context, payload *entity.OrderPayload) error {
	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	s.mu.Unlock()

	if s.started != nil {
		close(s.started)
		<-s.release
	}

	return s.err
}

func (s *fakeSender) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.payloads)
}

func validContact() entity.ContactInfo {
	return entity.ContactInfo{
		Name:    "Sara",
		Address: "12 Nile St, Cairo",
		Phone:   "01069847640",
	}
}

func newCheckout(t *testing.T, cart usecase.CartUsecase, sender service.OrderSender) usecase.CheckoutUsecase {
	t.Helper()

	return NewCheckoutService(CheckoutServiceParams{
		Cart:   cart,
		Sender: sender,
		Logger: testLogger(),
	})
}

func filledCart(t *testing.T) usecase.CartUsecase {
	t.Helper()

	cart := newCart(t, &fakeStorage{})
	require.NoError(t, cart.Add(context.Background(), "1", "quarter-kilo", 2))
	require.NoError(t, cart.Add(context.Background(), "4", "kilo", 1))

	return cart
}

func TestCheckout_EmptyCartFailsWithoutNetworkCall(t *testing.T) {
	cart := newCart(t, &fakeStorage{})
	sender := &fakeSender{}
	checkout := newCheckout(t, cart, sender)

	_, err := checkout.Submit(context.Background(), validContact())

	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
	assert.Zero(t, sender.calls())
}

func TestCheckout_InvalidContactFailsWithoutNetworkCall(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.ContactInfo)
	}{
		{name: "missing name", mutate: func(c *entity.ContactInfo) { c.Name = "" }},
		{name: "missing address", mutate: func(c *entity.ContactInfo) { c.Address = "" }},
		{name: "phone too short", mutate: func(c *entity.ContactInfo) { c.Phone = "0106984764" }},
		{name: "phone too long", mutate: func(c *entity.ContactInfo) { c.Phone = "010698476401" }},
		{name: "phone not numeric", mutate: func(c *entity.ContactInfo) { c.Phone = "0106984764a" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := filledCart(t)
			sender := &fakeSender{}
			checkout := newCheckout(t, cart, sender)

			contact := validContact()
			tt.mutate(&contact)

			_, err := checkout.Submit(context.Background(), contact)

			assert.ErrorIs(t, err, domainerrors.ErrInvalidContact)
			assert.Zero(t, sender.calls())
			assert.Len(t, cart.Snapshot(), 2, "cart must be preserved")
		})
	}
}

func TestCheckout_ElevenDigitPhonePasses(t *testing.T) {
	cart := filledCart(t)
	sender := &fakeSender{}
	checkout := newCheckout(t, cart, sender)

	result, err := checkout.Submit(context.Background(), validContact())

	require.NoError(t, err)
	assert.Equal(t, usecase.OutcomeSuccess, result.Outcome)
	assert.Equal(t, 1, sender.calls())
}

func TestCheckout_SuccessBuildsPayloadAndClearsCart(t *testing.T) {
	cart := filledCart(t)
	sender := &fakeSender{}
	checkout := newCheckout(t, cart, sender)

	result, err := checkout.Submit(context.Background(), validContact())
	require.NoError(t, err)

	assert.Equal(t, usecase.OutcomeSuccess, result.Outcome)
	assert.NotEmpty(t, result.OrderID)
	assert.Empty(t, cart.Snapshot(), "cart must be cleared on success")

	require.Equal(t, 1, sender.calls())
	payload := sender.payloads[0]
	assert.Equal(t, result.OrderID, payload.OrderID)
	assert.Equal(t, "Sara", payload.CustomerName)
	assert.Equal(t, "01069847640", payload.Phone)
	require.Len(t, payload.Lines, 2)
	assert.Equal(t, "plain light", payload.Lines[0].ProductName)
	assert.Equal(t, 2, payload.Lines[0].Quantity)
	assert.True(t, payload.Lines[0].UnitPrice.Equal(dec("125")))
	assert.True(t, payload.Lines[0].LineTotal.Equal(dec("250")))
	assert.True(t, payload.GrandTotal.Equal(dec("800")), "grand total %s", payload.GrandTotal)
}

func TestCheckout_RejectedPreservesCart(t *testing.T) {
	cart := filledCart(t)
	sender := &fakeSender{err: &service.RejectedError{StatusCode: http.StatusOK, Reason: "sheet is full"}}
	checkout := newCheckout(t, cart, sender)

	result, err := checkout.Submit(context.Background(), validContact())
	require.NoError(t, err)

	assert.Equal(t, usecase.OutcomeRejected, result.Outcome)
	assert.Equal(t, "sheet is full", result.Message)
	assert.Len(t, cart.Snapshot(), 2, "cart must be preserved on rejection")
}

func TestCheckout_TransportFailurePreservesCart(t *testing.T) {
	cart := filledCart(t)
	sender := &fakeSender{err: assert.AnError}
	checkout := newCheckout(t, cart, sender)

	result, err := checkout.Submit(context.Background(), validContact())
	require.NoError(t, err)

	assert.Equal(t, usecase.OutcomeTransportFailure, result.Outcome)
	assert.Len(t, cart.Snapshot(), 2, "cart must be preserved on transport failure")
}

func TestCheckout_RetryAfterFailureSucceeds(t *testing.T) {
	cart := filledCart(t)
	sender := &fakeSender{err: assert.AnError}
	checkout := newCheckout(t, cart, sender)

	result, err := checkout.Submit(context.Background(), validContact())
	require.NoError(t, err)
	require.Equal(t, usecase.OutcomeTransportFailure, result.Outcome)

	// The guard has released; a manual retry goes through.
	sender.err = nil
	result, err = checkout.Submit(context.Background(), validContact())
	require.NoError(t, err)
	assert.Equal(t, usecase.OutcomeSuccess, result.Outcome)
	assert.Equal(t, 2, sender.calls())
}

func TestCheckout_SecondSubmitWhileInFlightIsRefusedWithoutSending(t *testing.T) {
	cart := filledCart(t)
	sender := &fakeSender{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	checkout := newCheckout(t, cart, sender)

	done := make(chan *usecase.SubmitResult, 1)
	go func() {
		result, err := checkout.Submit(context.Background(), validContact())
		require.NoError(t, err)
		done <- result
	}()

	select {
	case <-sender.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never reached the sender")
	}

	_, err := checkout.Submit(context.Background(), validContact())
	assert.ErrorIs(t, err, domainerrors.ErrSubmissionInFlight)

	close(sender.release)
	result := <-done
	assert.Equal(t, usecase.OutcomeSuccess, result.Outcome)
	assert.Equal(t, 1, sender.calls(), "the repeated submit must not send")
}

func TestCheckout_InFlightPayloadIgnoresLaterCartMutations(t *testing.T) {
	cart := filledCart(t)
	sender := &fakeSender{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	checkout := newCheckout(t, cart, sender)

	done := make(chan struct{})
	go func() {
		_, err := checkout.Submit(context.Background(), validContact())
		require.NoError(t, err)
		close(done)
	}()

	<-sender.started

	// Mutations while the submission is in flight hit the live cart only;
	// the captured payload is isolated.
	require.NoError(t, cart.Add(context.Background(), "1", "100g", 1))

	close(sender.release)
	<-done

	require.Equal(t, 1, sender.calls())
	assert.Len(t, sender.payloads[0].Lines, 2)
	assert.True(t, sender.payloads[0].GrandTotal.Equal(dec("800")))
}

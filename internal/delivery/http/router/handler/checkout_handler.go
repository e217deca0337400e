package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"boulevard/internal/delivery/http/response"
	"boulevard/internal/domain/entity"
	"boulevard/internal/usecase"
)

// CheckoutHandler exposes the order submission pipeline.
type CheckoutHandler struct {
	checkout usecase.CheckoutUsecase
	logger   *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(checkout usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// CheckoutRequest represents the request body for submitting an order.
// Contact validation happens inside the pipeline so every caller gets the
// same rules.
type CheckoutRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Submit handles the checkout request. Precondition failures surface through
// the error middleware; a completed attempt maps its outcome onto the status
// code so the storefront can distinguish "refused" from "unreachable".
func (h *CheckoutHandler) Submit(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	contact := entity.ContactInfo{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}

	result, err := h.checkout.Submit(c.Request().Context(), contact)
	if err != nil {
		return errors.WithStack(err)
	}

	switch result.Outcome {
	case usecase.OutcomeSuccess:
		return response.Success(c, http.StatusOK, result, "Order submitted successfully")
	case usecase.OutcomeRejected:
		message := result.Message
		if message == "" {
			message = "The order was refused by the intake endpoint"
		}

		return response.Error(c, http.StatusUnprocessableEntity, "ORDER_REJECTED", message, result.OrderID)
	default:
		return response.Error(c, http.StatusBadGateway, "TRANSPORT_FAILURE",
			"Could not reach the order endpoint, please try again", result.OrderID)
	}
}

package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"boulevard/internal/delivery/http/response"
	"boulevard/internal/domain/entity"
	"boulevard/internal/usecase"
)

// CartHandler exposes the cart store over HTTP.
type CartHandler struct {
	cart   usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(cart usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:   cart,
		logger: logger,
	}
}

// AddItemRequest represents the request body for adding a cart item
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Weight    string `json:"weight" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateQuantityRequest represents the request body for changing a line's
// quantity. Zero and negative values remove the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartLineView is one rendered cart row.
type cartLineView struct {
	Product   entity.Product    `json:"product"`
	Weight    entity.WeightTier `json:"weight"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"price"`
	LineTotal decimal.Decimal   `json:"lineTotal"`
}

// cartView is the full cart with per-line and grand totals.
type cartView struct {
	Items []cartLineView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// GetCart renders the current cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	items := h.cart.Snapshot()

	view := cartView{
		Items: make([]cartLineView, 0, len(items)),
		Total: h.cart.Total(),
	}
	for _, item := range items {
		view.Items = append(view.Items, cartLineView{
			Product:   item.Product,
			Weight:    item.Weight,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		})
	}

	return response.Success(c, http.StatusOK, view, "")
}

// AddItem handles adding (or merging) a cart line.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.cart.Add(c.Request().Context(), req.ProductID, entity.WeightTier(req.Weight), req.Quantity); err != nil {
		return errors.WithStack(err)
	}

	return h.GetCart(c)
}

// UpdateQuantity handles replacing the quantity of the line at :index.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	index, err := parseIndex(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cart index")
	}

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	if err := h.cart.UpdateQuantity(c.Request().Context(), index, req.Quantity); err != nil {
		return errors.WithStack(err)
	}

	return h.GetCart(c)
}

// RemoveItem handles deleting the line at :index.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	index, err := parseIndex(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid cart index")
	}

	if err := h.cart.Remove(c.Request().Context(), index); err != nil {
		return errors.WithStack(err)
	}

	return h.GetCart(c)
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	if err := h.cart.Clear(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return h.GetCart(c)
}

func parseIndex(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("index"))
}

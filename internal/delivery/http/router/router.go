// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"boulevard/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		checkoutHandler: params.CheckoutHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("/products", r.catalogHandler.ListProducts)
		catalogGroup.GET("/weights", r.catalogHandler.ListWeights)
	}

	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/items/:index", r.cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:index", r.cartHandler.RemoveItem)
	}

	e.POST("/checkout", r.checkoutHandler.Submit)
}

package server

import (
	"net/http"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Product    *handler.ProductHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Auth       *handler.AuthHandler
	Receipt    *handler.ReceiptHandler
	AdminSales *handler.AdminSalesHandler
	AdminCat   *handler.AdminCatalogHandler
	AdminUsers *handler.AdminUserHandler
	Navigation *handler.NavigationHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.Receipt.RegisterRoutes(e)
	h.AdminSales.RegisterRoutes(e)
	h.AdminCat.RegisterRoutes(e)
	h.AdminUsers.RegisterRoutes(e)
	h.Navigation.RegisterRoutes(e)
}

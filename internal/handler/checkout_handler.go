package handler

import (
	"net/http"
	"strings"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/middleware"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

// customer_identifier が空ならログイン中のcedulaを使う
type CheckoutRequest struct {
	CustomerIdentifier string `json:"customer_identifier"`
	CustomerName       string `json:"customer_name"`
	CustomerAddress    string `json:"customer_address"`
}

type CheckoutStatusResponse struct {
	InProgress bool `json:"in_progress"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/checkout", h.checkout)
	e.GET("/checkout/status", h.status)
}

// チェックアウトはセッションごとのSubmitterに任せる
func (h *CheckoutHandler) checkout(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id := strings.TrimSpace(req.CustomerIdentifier)
	if id == "" {
		id = middleware.AuthStateFrom(c).CustomerIdentifier
	}

	receipt, err := s.Checkout.Checkout(c.Request().Context(), s.Cart, usecase.CheckoutInput{
		CustomerIdentifier: id,
		CustomerName:       req.CustomerName,
		CustomerAddress:    req.CustomerAddress,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *CheckoutHandler) status(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CheckoutStatusResponse{InProgress: s.Checkout.InProgress()})
}

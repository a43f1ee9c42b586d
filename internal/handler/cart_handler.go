package handler

import (
	"net/http"
	"strconv"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP。カートはログイン前でも使える。
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.GET("", h.getCart)
	g.DELETE("", h.clear)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:id", h.patchItem)
	g.DELETE("/items/:id", h.deleteItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.uc.View(s.Cart))
}

func (h *CartHandler) addItem(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), s.Cart, usecase.AddItemInput{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) patchItem(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	return c.JSON(http.StatusOK, h.uc.UpdateQuantity(s.Cart, itemID, req.Quantity))
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	return c.JSON(http.StatusOK, h.uc.RemoveItem(s.Cart, itemID))
}

func (h *CartHandler) clear(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.uc.Clear(s.Cart))
}

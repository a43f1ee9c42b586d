package handler

import (
	"bytes"
	"net/http"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/middleware"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/receipt"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReceiptHandler struct {
	uc *usecase.ReceiptUsecase
}

func NewReceiptHandler(uc *usecase.ReceiptUsecase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

func (h *ReceiptHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/receipts")

	// 自分の一覧はログイン必須
	g.GET("", h.listMine, middleware.RequireRoles())
	g.GET("/:code", h.get)
	g.GET("/:code/print", h.print)
}

func (h *ReceiptHandler) get(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}

	r, err := h.uc.Get(c.Request().Context(), c.Param("code"), middleware.AuthStateFrom(c), s)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// 印刷用のプレーンテキスト
func (h *ReceiptHandler) print(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}

	r, err := h.uc.Get(c.Request().Context(), c.Param("code"), middleware.AuthStateFrom(c), s)
	if err != nil {
		return writeError(c, err)
	}

	var buf bytes.Buffer
	if err := receipt.Render(&buf, r); err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, buf.Bytes())
}

func (h *ReceiptHandler) listMine(c echo.Context) error {
	out, err := h.uc.ListMine(c.Request().Context(), middleware.AuthStateFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

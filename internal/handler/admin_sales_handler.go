package handler

import (
	"net/http"
	"strconv"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/middleware"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者・マネージャー向けの売上API
type AdminSalesHandler struct {
	uc *usecase.SalesUsecase
}

func NewAdminSalesHandler(uc *usecase.SalesUsecase) *AdminSalesHandler {
	return &AdminSalesHandler{uc: uc}
}

type UpdateSaleStatusRequest struct {
	Status string `json:"estado"`
}

func (h *AdminSalesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/admin")
	g.Use(middleware.RequireRoles(model.RoleAdmin, model.RoleManager))

	g.GET("/sales", h.list)
	g.GET("/sales/by-cedula/:cedula", h.listByCedula)
	g.GET("/sales/:code", h.get)
	g.PATCH("/sales/:code/status", h.updateStatus)
	g.GET("/dashboard", h.dashboard)
}

func (h *AdminSalesHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminSalesHandler) listByCedula(c echo.Context) error {
	out, err := h.uc.ListByCedula(c.Request().Context(), c.Param("cedula"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminSalesHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminSalesHandler) updateStatus(c echo.Context) error {
	var req UpdateSaleStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("code"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// range=week|month|year（それ以外は全期間）、year省略時は今年
func (h *AdminSalesHandler) dashboard(c echo.Context) error {
	rng := c.QueryParam("range")
	if rng == "" {
		rng = "month"
	}

	year := 0
	if s := c.QueryParam("year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid year"})
		}
		year = n
	}

	out, err := h.uc.Dashboard(c.Request().Context(), rng, year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

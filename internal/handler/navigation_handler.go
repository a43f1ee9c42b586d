package handler

import (
	"net/http"
	"strings"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/guard"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/middleware"

	"github.com/labstack/echo/v4"
)

// フロントのルーティングが遷移前に問い合わせる
type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

type NavigationResponse struct {
	Decision model.AccessDecision `json:"decision"`
	Redirect string               `json:"redirect,omitempty"`
}

func (h *NavigationHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/navigation/decide", h.decide)
}

// roles=admin,manager のようにカンマ区切り。空ならログインのみ要求。
func (h *NavigationHandler) decide(c echo.Context) error {
	var allowed []model.Role
	for _, s := range strings.Split(c.QueryParam("roles"), ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		r := model.ParseRole(s)
		if r == model.RoleNone {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown role: " + s})
		}
		allowed = append(allowed, r)
	}

	d := guard.Decide(middleware.AuthStateFrom(c), allowed)
	return c.JSON(http.StatusOK, NavigationResponse{Decision: d, Redirect: guard.Target(d)})
}

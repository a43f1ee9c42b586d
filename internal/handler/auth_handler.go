package handler

import (
	"net/http"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/middleware"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
	g.GET("/me", h.me)
}

func (h *AuthHandler) login(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	}

	state, err := h.uc.Login(c.Request().Context(), s.ID, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, state)
}

// ログアウトしてもカートは残す（セッションは同じ）
func (h *AuthHandler) logout(c echo.Context) error {
	s, err := sessionOrError(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Logout(c.Request().Context(), s.ID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logout success"})
}

// me は現在の認証状態。未ログインでも200。
func (h *AuthHandler) me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.AuthStateFrom(c))
}

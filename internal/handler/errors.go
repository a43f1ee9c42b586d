package handler

import (
	"errors"
	"net/http"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/middleware"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// カート・チェックアウトの失敗はKindで返す
type CheckoutErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	if ce, ok := usecase.AsCheckoutError(err); ok {
		return c.JSON(checkoutStatus(ce), CheckoutErrorResponse{
			Error:  string(ce.Kind),
			Reason: ce.Reason,
			Detail: ce.Detail,
		})
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "INVALID_CREDENTIALS"})
	case errors.Is(err, usecase.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "INVALID_TOKEN"})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func checkoutStatus(ce *usecase.CheckoutError) int {
	switch ce.Kind {
	case usecase.KindInvalidVariant:
		return http.StatusUnprocessableEntity
	case usecase.KindInsufficientStock, usecase.KindAlreadyInProgress:
		return http.StatusConflict
	case usecase.KindValidation:
		return http.StatusBadRequest
	case usecase.KindCheckoutFailed:
		// バックエンドが拒否したのか、届かなかったのか
		if ce.UpstreamStatus >= 400 && ce.UpstreamStatus < 500 {
			return http.StatusUnprocessableEntity
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Sessionミドルウェアを通っていなければ500
func sessionOrError(c echo.Context) (*usecase.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, usecase.NewHTTPError(http.StatusInternalServerError, "session missing")
	}
	return s, nil
}

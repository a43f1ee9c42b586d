package middleware

import (
	"net/http"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/guard"

	"github.com/labstack/echo/v4"
)

// RequireRoles はセッションの認証状態でルートを守る。
// roles が空ならログインだけを求める。
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := guard.Decide(AuthStateFrom(c), roles)
			switch d {
			case model.AccessPermit:
				return next(c)
			case model.AccessPending:
				// 状態が分かるまで何も出さない
				return c.JSON(http.StatusServiceUnavailable, errorJSON("auth pending"))
			case model.AccessRedirectLogin:
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized", Redirect: guard.Target(d)})
			default:
				return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden", Redirect: guard.Target(d)})
			}
		}
	}
}

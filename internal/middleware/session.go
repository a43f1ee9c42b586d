package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	CtxSessionKey   = "session"    // *usecase.Session
	CtxAuthStateKey = "auth_state" // model.AuthState

	SessionCookieName = "sf_session"
)

// セッションの取得・作成
type SessionStore interface {
	Start() *usecase.Session
	Get(id string) (*usecase.Session, bool)
}

// 認証状態の復元
type AuthRestorer interface {
	RestoreWithToken(ctx context.Context, sessionID string) (model.AuthState, string)
	StateFromToken(token string) (model.AuthState, error)
}

type SessionOptions struct {
	Secure  bool // prodではtrue
	Skipper echomw.Skipper
}

// Session はCookieからブラウザセッションを解決し、認証状態をcontextへ入れる。
// Cookieが無い・期限切れなら空のカートで新しいセッションを作る。
func Session(sessions SessionStore, auth AuthRestorer, opts SessionOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if opts.Skipper != nil && opts.Skipper(c) {
				return next(c)
			}

			var sess *usecase.Session
			if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				sess, _ = sessions.Get(ck.Value)
			}
			if sess == nil {
				sess = sessions.Start()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(CtxSessionKey, sess)

			ctx := c.Request().Context()
			state, token := auth.RestoreWithToken(ctx, sess.ID)

			//Bearerが読めればそちらを優先（APIクライアント用）
			//読めないときはCookie側の状態のまま。可否はRequireRolesが決める
			if raw, ok := bearerToken(c.Request()); ok {
				if st, err := auth.StateFromToken(raw); err == nil {
					state, token = st, raw
				}
			}

			c.Set(CtxAuthStateKey, state)
			if token != "" {
				c.SetRequest(c.Request().WithContext(repo.WithAccessToken(ctx, token)))
			}

			return next(c)
		}
	}
}

// SessionFrom はSessionミドルウェアが入れたセッションを返す。
func SessionFrom(c echo.Context) (*usecase.Session, bool) {
	s, ok := c.Get(CtxSessionKey).(*usecase.Session)
	return s, ok && s != nil
}

// 入っていなければ読み込み未完了扱い
func AuthStateFrom(c echo.Context) model.AuthState {
	st, _ := c.Get(CtxAuthStateKey).(model.AuthState)
	return st
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

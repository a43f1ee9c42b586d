package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/metrics"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

type stubIDs struct{ n int }

func (g *stubIDs) NewID() string {
	g.n++
	return "sess-" + strconv.Itoa(g.n)
}

type stubAuth struct {
	states map[string]model.AuthState
	tokens map[string]string
	bearer map[string]model.AuthState
}

func (a *stubAuth) RestoreWithToken(ctx context.Context, sessionID string) (model.AuthState, string) {
	if st, ok := a.states[sessionID]; ok {
		return st, a.tokens[sessionID]
	}
	return model.Anonymous(), ""
}

func (a *stubAuth) StateFromToken(token string) (model.AuthState, error) {
	if st, ok := a.bearer[token]; ok {
		return st, nil
	}
	return model.AuthState{}, errors.New("bad token")
}

type mwOKResponse struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

func newSessionManager() *usecase.SessionManager {
	return usecase.NewSessionManager(&stubIDs{}, stubClock{}, usecase.CheckoutDeps{}, nil, zap.NewNop())
}

func newEchoWithSession(sessions SessionStore, auth AuthRestorer, mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(Session(sessions, auth, SessionOptions{}))
	e.GET("/probe", func(c echo.Context) error {
		s, _ := SessionFrom(c)
		tok, _ := repo.AccessTokenFrom(c.Request().Context())
		return c.JSON(http.StatusOK, mwOKResponse{
			SessionID: s.ID,
			Role:      string(AuthStateFrom(c).Role),
			Token:     tok,
		})
	}, mws...)
	return e
}

func TestSession_CreatesCookieAndReuses(t *testing.T) {
	sessions := newSessionManager()
	e := newEchoWithSession(sessions, &stubAuth{})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	var first mwOKResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Equal(t, cookies[0].Value, first.SessionID)

	req2 := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req2.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req2)

	var second mwOKResponse
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &second))
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Empty(t, rec2.Result().Cookies())
	assert.Equal(t, 1, sessions.Len())
}

func TestSession_UnknownCookieStartsNewSession(t *testing.T) {
	sessions := newSessionManager()
	e := newEchoWithSession(sessions, &stubAuth{})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body mwOKResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEqual(t, "expired", body.SessionID)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestSession_RestoresAuthAndForwardsToken(t *testing.T) {
	sessions := newSessionManager()
	s := sessions.Start()
	auth := &stubAuth{
		states: map[string]model.AuthState{s.ID: {IsAuthenticated: true, Role: model.RoleAdmin, LoadingComplete: true}},
		tokens: map[string]string{s.ID: "tok-admin"},
	}
	e := newEchoWithSession(sessions, auth)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: s.ID})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body mwOKResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "admin", body.Role)
	assert.Equal(t, "tok-admin", body.Token)
}

func TestSession_Bearer(t *testing.T) {
	auth := &stubAuth{bearer: map[string]model.AuthState{
		"good": {IsAuthenticated: true, Role: model.RoleManager, LoadingComplete: true},
	}}
	e := newEchoWithSession(newSessionManager(), auth)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "manager", body.Role)
	assert.Equal(t, "good", body.Token)

}

func TestSession_UnreadableBearerFallsBackToCookieState(t *testing.T) {
	auth := &stubAuth{
		states: map[string]model.AuthState{"sess-1": {IsAuthenticated: true, Role: model.RoleClient, LoadingComplete: true}},
		tokens: map[string]string{"sess-1": "tok-client"},
	}
	sessions := newSessionManager()
	e := newEchoWithSession(sessions, auth)

	// 公開ルートは壊れたBearerでも通る
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "client", body.Role)
	assert.Equal(t, "tok-client", body.Token)

	// Cookieも無ければ未ログインのまま。守られたルートはRequireRolesが401
	guarded := newEchoWithSession(newSessionManager(), &stubAuth{}, RequireRoles(model.RoleAdmin))
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/login"`)
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name     string
		state    model.AuthState
		roles    []model.Role
		want     int
		redirect string
	}{
		{name: "pending", state: model.AuthState{}, roles: []model.Role{model.RoleAdmin}, want: http.StatusServiceUnavailable},
		{name: "anonymous", state: model.Anonymous(), roles: []model.Role{model.RoleAdmin}, want: http.StatusUnauthorized, redirect: "/login"},
		{name: "client on admin", state: model.AuthState{IsAuthenticated: true, LoadingComplete: true, Role: model.RoleClient}, roles: []model.Role{model.RoleAdmin}, want: http.StatusForbidden, redirect: "/"},
		{name: "manager on client", state: model.AuthState{IsAuthenticated: true, LoadingComplete: true, Role: model.RoleManager}, roles: []model.Role{model.RoleClient}, want: http.StatusForbidden, redirect: "/admin"},
		{name: "no role", state: model.AuthState{IsAuthenticated: true, LoadingComplete: true}, roles: []model.Role{model.RoleClient}, want: http.StatusForbidden, redirect: "/unauthorized"},
		{name: "admin permitted", state: model.AuthState{IsAuthenticated: true, LoadingComplete: true, Role: model.RoleAdmin}, roles: []model.Role{model.RoleAdmin, model.RoleManager}, want: http.StatusOK},
		{name: "any authenticated", state: model.AuthState{IsAuthenticated: true, LoadingComplete: true, Role: model.RoleClient}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(CtxAuthStateKey, tt.state)

			h := RequireRoles(tt.roles...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			require.NoError(t, h(c))
			assert.Equal(t, tt.want, rec.Code)

			if tt.redirect != "" {
				var body errorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.redirect, body.Redirect)
			}
		})
	}
}

func TestRequestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewCollectors(reg)

	e := echo.New()
	e.Use(RequestMetrics(m))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("/ok", "204")))
}

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/metrics"
	appmw "github.com/Ysaidd/proyectoAnfer-sub000/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Logger   *zap.Logger
	Metrics  *metrics.Collectors
	Gatherer prometheus.Gatherer // nilなら/metricsを出さない

	Sessions appmw.SessionStore
	Auth     appmw.AuthRestorer
	Secure   bool

	AllowOrigins []string // 空ならCORSなし
}

// New はミドルウェアとルートを組んだechoを返す。
// 順番: Recover → ログ → メトリクス → CORS → セッション
func New(opts Options, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(appmw.RequestMetrics(opts.Metrics))

	if len(opts.AllowOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     opts.AllowOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
			AllowCredentials: true,
		}))
	}

	if opts.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(opts.Gatherer)))
	}

	// /metrics と /healthz はセッションを作らない
	e.Use(appmw.Session(opts.Sessions, opts.Auth, appmw.SessionOptions{
		Secure:  opts.Secure,
		Skipper: skipInfra,
	}))
	RegisterRoutes(e, h)

	return e
}

func skipInfra(c echo.Context) bool {
	switch c.Path() {
	case "/metrics", "/healthz":
		return true
	}
	return false
}

// Run は ctx が終わるまで待ち受け、終わったら接続を閉じる。
func Run(ctx context.Context, e *echo.Echo, addr string, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("server shutting down")
	return e.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/config"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/handler"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/infra/api"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/infra/cache"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/infra/db"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/infra/events"
	infraRepo "github.com/Ysaidd/proyectoAnfer-sub000/internal/infra/repository"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/metrics"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/server"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/usecase"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func newLogger(prod bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return l
}

func main() {
	//.envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.IsProd())
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//メトリクス
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewCollectors(reg)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//ストアAPI（商品・注文・売上・トークン）
	storeAPI := api.NewClient(cfg.StoreAPIURL, logger)

	//レシート台帳（任意）
	var ledger repo.ReceiptRepository
	if cfg.LedgerEnabled() {
		gormDB, err := db.Connect(cfg.DSN(), !cfg.IsProd())
		if err != nil {
			logger.Fatal("db connect failed", zap.Error(err))
		}
		if err := db.Migrate(gormDB); err != nil {
			logger.Fatal("db migrate failed", zap.Error(err))
		}
		ledger = infraRepo.NewReceiptGormRepository(gormDB)
		logger.Info("receipt ledger enabled")
	}

	//チェックアウトイベント（任意）
	var publisher repo.ReceiptPublisher
	if brokers := events.ParseBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		p := events.NewKafkaReceiptPublisher(brokers, cfg.KafkaTopic)
		defer func() {
			if err := p.Close(); err != nil {
				logger.Warn("kafka writer close failed", zap.Error(err))
			}
		}()
		publisher = p
		logger.Info("checkout events enabled", zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaTopic))
	}

	//認証セッション（redis）
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	authSessions := cache.NewSessionStore(rdb)

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty; access tokens are decoded without signature check")
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(storeAPI, authSessions, validator.NewAuthValidator(), clock, cfg.JWTSecret, cfg.SessionTTL, logger)
	sessions := usecase.NewSessionManager(idGen, clock, usecase.CheckoutDeps{
		Orders:    storeAPI,
		Receipts:  ledger,
		Publisher: publisher,
		Validator: validator.NewCheckoutValidator(),
		Clock:     clock,
		Timeout:   cfg.CheckoutTimeout,
		Logger:    logger,
		Metrics:   m,
	}, m, logger)

	adminUC := usecase.NewAdminUsecase(storeAPI, storeAPI, storeAPI, validator.NewAdminValidator(), logger)

	//Handler生成
	h := server.Handlers{
		Product:    handler.NewProductHandler(usecase.NewProductUsecase(storeAPI, logger)),
		Cart:       handler.NewCartHandler(usecase.NewCartUsecase(storeAPI, m, logger)),
		Checkout:   handler.NewCheckoutHandler(),
		Auth:       handler.NewAuthHandler(authUC),
		Receipt:    handler.NewReceiptHandler(usecase.NewReceiptUsecase(ledger, logger)),
		AdminSales: handler.NewAdminSalesHandler(usecase.NewSalesUsecase(storeAPI, clock, logger)),
		AdminCat:   handler.NewAdminCatalogHandler(adminUC),
		AdminUsers: handler.NewAdminUserHandler(adminUC),
		Navigation: handler.NewNavigationHandler(),
	}

	var origins []string
	if cfg.FEURL != "" {
		origins = strings.Split(cfg.FEURL, ",")
	}

	e := server.New(server.Options{
		Logger:       logger,
		Metrics:      m,
		Gatherer:     reg,
		Sessions:     sessions,
		Auth:         authUC,
		Secure:       cfg.IsProd(),
		AllowOrigins: origins,
	}, h)

	//放置されたブラウザセッションを掃除
	go sweepSessions(ctx, sessions, cfg.SessionIdle)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}
	if err := server.Run(ctx, e, addr, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func sweepSessions(ctx context.Context, sessions *usecase.SessionManager, idle time.Duration) {
	if idle <= 0 {
		return
	}
	t := time.NewTicker(idle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			sessions.Sweep(idle)
		}
	}
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Configはアプリ全体の設定
type Config struct {
	Port        string `envconfig:"PORT"`          // サーバーポート（8080）
	StoreAPIURL string `envconfig:"STORE_API_URL"` // ストアAPIのベースURL

	// レシート台帳（どちらも無ければ台帳なし）
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"storefront"`
	PostgresHost     string `envconfig:"POSTGRES_HOST"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS"` // 空ならイベント送信なし
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"storefront.checkouts"`

	JWTSecret string `envconfig:"JWT_SECRET"` // 空なら署名検証しない

	CheckoutTimeout time.Duration `envconfig:"CHECKOUT_TIMEOUT" default:"15s"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	SessionIdle     time.Duration `envconfig:"SESSION_IDLE" default:"2h"`

	GoEnv string `envconfig:"GO_ENV" default:"dev"` // dev/prod
	FEURL string `envconfig:"FE_URL"`               // フロントURL（CORS）
}

// Loadは環境変数
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.StoreAPIURL == "" {
		return Config{}, fmt.Errorf("STORE_API_URL is required")
	}
	if !strings.HasPrefix(cfg.StoreAPIURL, "http://") && !strings.HasPrefix(cfg.StoreAPIURL, "https://") {
		return Config{}, fmt.Errorf("STORE_API_URL must be http(s) url")
	}
	if cfg.CheckoutTimeout <= 0 {
		return Config{}, fmt.Errorf("CHECKOUT_TIMEOUT must be positive")
	}

	return cfg, nil
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// LedgerEnabled は台帳用のDB設定があるか
func (c Config) LedgerEnabled() bool {
	return c.DatabaseURL != "" || c.PostgresHost != ""
}

// DSN は DATABASE_URL を優先する
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

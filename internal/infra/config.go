package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	ShopName         string
	DatabaseURL      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	ReceiptChannel   string
	ReceiptLogPath   string
	GeoIPDBPath      string
	DefaultLocale    string
	AllowedOrigins   []string
	HistoryLimit     int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	WSPingInterval   time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Nothing is hard-required: without DATABASE_URL the
// service keeps receipt history in a local JSON file, and REDIS_ADDR defaults
// to a local instance.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		ShopName:         getEnv("SHOP_NAME", "Kopi Kita"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		ReceiptChannel:   getEnv("RECEIPT_CHANNEL", "order_events"),
		ReceiptLogPath:   getEnv("RECEIPT_LOG_PATH", "receipt_log.json"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:    strings.ToLower(getEnv("DEFAULT_LOCALE", "en")),
		AllowedOrigins:   getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		HistoryLimit:     getEnvInt("HISTORY_LIMIT", 20),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		WSPingInterval:   time.Second * time.Duration(getEnvInt("WS_PING_INTERVAL_SECONDS", 30)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.DefaultLocale != "en" && cfg.DefaultLocale != "id" {
		return nil, fmt.Errorf("unsupported DEFAULT_LOCALE %q (expected en or id)", cfg.DefaultLocale)
	}

	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 20
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

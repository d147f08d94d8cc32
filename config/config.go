package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger         `mapstructure:"logger"`
	DB        Database       `mapstructure:"database"`
	API       API            `mapstructure:"api"`
	Binance   Binance        `mapstructure:"binance"`
	PnL       PnL            `mapstructure:"pnl"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Cache     Cache          `mapstructure:"cache"`
	Telegram  TelegramConfig `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Binance struct {
	APIKey              string        `mapstructure:"api_key"`
	APISecret           string        `mapstructure:"api_secret"`
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// PnL holds tunables of the profit/loss computation. Pairs is the watchlist
// used by the scheduled daily report, in BASE-QUOTE form.
type PnL struct {
	Pairs              []string      `mapstructure:"pairs"`
	PeriodStartDate    string        `mapstructure:"period_start_date"`
	PriceCacheTTL      time.Duration `mapstructure:"price_cache_ttl"`
	PriceRetryAttempts int           `mapstructure:"price_retry_attempts"`
	PriceRetryBackoff  time.Duration `mapstructure:"price_retry_backoff"`
}

type Scheduler struct {
	DailyReportSpec string        `mapstructure:"daily_report_spec"`
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type TelegramConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	BotToken        string        `mapstructure:"bot_token"`
	ChatID          int64         `mapstructure:"chat_id"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

func Load() (*Config, error) {
	// .env is optional, env vars may come from the runtime directly.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("api.port", 8080)

	viper.SetDefault("binance.max_request_per_minute", 60)
	viper.SetDefault("binance.timeout", 10*time.Second)

	viper.SetDefault("pnl.price_cache_ttl", 5*time.Minute)
	viper.SetDefault("pnl.price_retry_attempts", 3)
	viper.SetDefault("pnl.price_retry_backoff", 500*time.Millisecond)

	viper.SetDefault("scheduler.daily_report_spec", "0 1 * * *")
	viper.SetDefault("scheduler.max_concurrency", 2)
	viper.SetDefault("scheduler.timeout_duration", 5*time.Minute)

	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
}

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	Postgres struct {
		URL string
	}
	Redis struct {
		URL string
	}

	PaymentGateway struct {
		BaseURL string
		APIKey  string
	}
	BankResolver struct {
		BaseURL string
		APIKey  string
	}

	Telegram struct {
		BotToken     string
		ReviewChatID int64
	}

	Auth struct {
		JWTSecret   string
		InternalKey string
	}

	Ledger struct {
		MinFunding        decimal.Decimal
		MinWithdrawal     decimal.Decimal
		DailyInterestRate decimal.Decimal
	}
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first; OS-set variables win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine in prod; anything else we should know.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	bindings := map[string]string{
		"app.env":              "APP_ENV",
		"http.addr":            "HTTP_ADDR",
		"log.level":            "LOG_LEVEL",
		"postgres.url":         "DATABASE_URL",
		"redis.url":            "REDIS_URL",
		"paygate.base_url":     "PAYMENT_GATEWAY_URL",
		"paygate.api_key":      "PAYMENT_GATEWAY_API_KEY",
		"resolver.base_url":    "BANK_RESOLVER_URL",
		"resolver.api_key":     "BANK_RESOLVER_API_KEY",
		"telegram.bot_token":   "TELEGRAM_BOT_TOKEN",
		"telegram.review_chat": "TELEGRAM_REVIEW_CHAT_ID",
		"auth.jwt_secret":      "JWT_SECRET",
		"auth.internal_key":    "INTERNAL_API_KEY",
		"ledger.min_funding":   "MIN_FUNDING_AMOUNT",
		"ledger.min_withdraw":  "MIN_WITHDRAWAL_AMOUNT",
		"ledger.interest_rate": "DAILY_INTEREST_RATE",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	viper.SetDefault("app.env", "dev")
	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("ledger.min_funding", "100")
	viper.SetDefault("ledger.min_withdraw", "1000")
	viper.SetDefault("ledger.interest_rate", "0.025")

	cfg := Config{
		AppEnv:   viper.GetString("app.env"),
		HTTPAddr: viper.GetString("http.addr"),
		LogLevel: viper.GetString("log.level"),
	}
	cfg.Postgres.URL = viper.GetString("postgres.url")
	cfg.Redis.URL = viper.GetString("redis.url")
	cfg.PaymentGateway.BaseURL = viper.GetString("paygate.base_url")
	cfg.PaymentGateway.APIKey = viper.GetString("paygate.api_key")
	cfg.BankResolver.BaseURL = viper.GetString("resolver.base_url")
	cfg.BankResolver.APIKey = viper.GetString("resolver.api_key")
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.ReviewChatID = viper.GetInt64("telegram.review_chat")
	cfg.Auth.JWTSecret = viper.GetString("auth.jwt_secret")
	cfg.Auth.InternalKey = viper.GetString("auth.internal_key")

	if cfg.Postgres.URL == "" {
		return nil, errors.New("DATABASE_URL is not set in environment or .env file")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set in environment or .env file")
	}

	var err error
	if cfg.Ledger.MinFunding, err = decimal.NewFromString(viper.GetString("ledger.min_funding")); err != nil {
		return nil, fmt.Errorf("MIN_FUNDING_AMOUNT is not a valid decimal: %w", err)
	}
	if cfg.Ledger.MinWithdrawal, err = decimal.NewFromString(viper.GetString("ledger.min_withdraw")); err != nil {
		return nil, fmt.Errorf("MIN_WITHDRAWAL_AMOUNT is not a valid decimal: %w", err)
	}
	if cfg.Ledger.DailyInterestRate, err = decimal.NewFromString(viper.GetString("ledger.interest_rate")); err != nil {
		return nil, fmt.Errorf("DAILY_INTEREST_RATE is not a valid decimal: %w", err)
	}

	return &cfg, nil
}

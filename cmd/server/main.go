package main

import (
	"PoundsBosses/internal/adapters/bankresolver"
	"PoundsBosses/internal/adapters/eventbus"
	"PoundsBosses/internal/adapters/paygate"
	"PoundsBosses/internal/adapters/postgres"
	"PoundsBosses/internal/adapters/rediscache"
	"PoundsBosses/internal/adapters/security"
	"PoundsBosses/internal/adapters/telegram"
	"PoundsBosses/internal/api"
	"PoundsBosses/internal/core/ports"
	"PoundsBosses/internal/ledger"
	"PoundsBosses/internal/shared/config"
	"PoundsBosses/internal/shared/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode, cfg.LogLevel)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("http_addr", cfg.HTTPAddr).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Database
	db, err := postgres.NewDB(ctx, cfg.Postgres.URL, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// 4. Initialize Repositories
	accountRepo := postgres.NewAccountRepository(db, &baseLogger)
	bankRepo := postgres.NewBankAccountRepository(db, &baseLogger)
	queueRepo := postgres.NewWithdrawalQueueRepository(db, &baseLogger)

	// 5. Initialize Adapters
	pinHasher, err := security.NewBcryptPinHasher(0, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize PIN hasher")
	}
	gateway := paygate.NewClient(cfg.PaymentGateway.BaseURL, cfg.PaymentGateway.APIKey, &baseLogger)
	resolver := bankresolver.NewClient(cfg.BankResolver.BaseURL, cfg.BankResolver.APIKey, &baseLogger)

	// The cache is optional: without REDIS_URL every read goes to Postgres.
	var cache ports.AccountCache
	if cfg.Redis.URL != "" {
		cache, err = rediscache.NewAccountCache(ctx, cfg.Redis.URL, 0, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize account cache")
		}
	} else {
		baseLogger.Warn().Msg("REDIS_URL not set; running without the account cache")
	}

	// 6. Initialize the Event Bus and the review notifier
	bus := eventbus.NewInMemoryEventBus(&baseLogger)
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ReviewChatID != 0 {
		botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
		}
		notifier := telegram.NewReviewNotifier(botAPI, cfg.Telegram.ReviewChatID, &baseLogger)
		notifier.Register(bus)
	} else {
		baseLogger.Warn().Msg("Telegram review channel not configured; running without notifications")
	}

	// 7. Initialize the Ledger Service
	svc := ledger.NewService(ledger.Deps{
		Accounts: accountRepo,
		Banks:    bankRepo,
		Queue:    queueRepo,
		Gateway:  gateway,
		Resolver: resolver,
		Pins:     pinHasher,
		Cache:    cache,
		Bus:      bus,
	}, ledger.Limits{
		MinFunding:        cfg.Ledger.MinFunding,
		MinWithdrawal:     cfg.Ledger.MinWithdrawal,
		DailyInterestRate: cfg.Ledger.DailyInterestRate,
	}, &baseLogger)

	// 8. Start the HTTP server
	handlers := api.NewHandlers(svc, &baseLogger)
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Routes(handlers, []byte(cfg.Auth.JWTSecret), cfg.Auth.InternalKey),
	}

	go func() {
		baseLogger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	baseLogger.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	baseLogger.Info().Msg("Server stopped")
}

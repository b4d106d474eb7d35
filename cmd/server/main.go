package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dispatch-alerts-api/internal/handler"
	"dispatch-alerts-api/internal/middleware"
	"dispatch-alerts-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	addr := env("ADDR", ":8080")
	dataFile := env("DATA_FILE", "data/data.json")
	accountsFile := env("ACCOUNTS_FILE", "data/accounts.json")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	logger, err := newLogger(env("LOG_LEVEL", "info"))
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// a missing or malformed dataset is a startup failure, not a 500
	st, err := store.Open(dataFile)
	if err != nil {
		logger.Fatal("open dataset", zap.String("file", dataFile), zap.Error(err))
	}
	logger.Info("dataset loaded", zap.String("file", dataFile))

	accounts, err := store.OpenAccounts(accountsFile)
	if err != nil {
		logger.Fatal("open accounts", zap.String("file", accountsFile), zap.Error(err))
	}

	h := handler.New(st, accounts, secret, logger)

	var root http.Handler = h.Router()
	if env("REQUIRE_AUTH", "false") == "true" {
		root = middleware.RequireAuth(secret)(root)
		logger.Info("auth required on mutating endpoints")
	}
	rl := middleware.NewRateLimiter(5, 10)
	root = middleware.RateLimit(rl)(root)
	root = middleware.Metrics(root)
	root = middleware.RequestLog(logger)(root)

	srv := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

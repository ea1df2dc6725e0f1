// Package main API Server 入口
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dancefusion/api"
	"dancefusion/internal/apiserver/auth"
	"dancefusion/internal/apiserver/server"
	"dancefusion/internal/config"
	"dancefusion/internal/shared/cache"
	redisCache "dancefusion/internal/shared/cache/redis"
	"dancefusion/internal/shared/payment"
	"dancefusion/internal/shared/storage"
	"dancefusion/internal/shared/storage/memstore"
	"dancefusion/internal/shared/storage/mongostore"
	"dancefusion/pkg/logging"
)

func main() {
	configDir := flag.String("config", "", "配置文件目录（默认按 APP_ENV 选择）")
	flag.Parse()
	if *configDir != "" {
		config.SetConfigDir(*configDir)
	}

	if err := run(); err != nil {
		logging.Default("api-server").WithError(err).Error("API Server exited")
		os.Exit(1)
	}
}

func run() error {
	// 加载配置（自动加载 .env，根据 APP_ENV 选择 YAML）
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Output:    "stdout",
		Component: "api-server",
	})
	logger.Info("Starting API Server", "env", string(cfg.Env), "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 校验内嵌 OpenAPI 文档
	raw, err := api.Spec()
	if err != nil {
		return err
	}
	apiDoc, err := server.LoadAPIDoc(ctx, raw)
	if err != nil {
		return err
	}

	metrics := server.NewMetrics("dancefusion")

	// 初始化持久化存储
	store, err := openStore(cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer store.Close()

	// 初始化课程视图缓存（未配置 REDIS_URL 时不启用）
	var viewCache cache.Cache = cache.NewNoOpCache()
	if cfg.RedisURL != "" {
		rc, err := redisCache.NewStoreFromURL(cfg.RedisURL, cfg.Cache.ClassTTL)
		if err != nil {
			return err
		}
		viewCache = rc
		logger.Info("Connected to Redis")
	}
	defer viewCache.Close()

	if cfg.Payment.SecretKey == "" {
		logger.Warn("PAYMENT_SECRET_KEY not set, payment intents will fail")
	}
	gateway := payment.NewGateway(
		payment.NewStripeCreator(cfg.Payment.SecretKey),
		cfg.Payment.Currency,
		cfg.Payment.MethodTypes,
	)

	h := server.NewHandler(server.Deps{
		Store:            store,
		Cache:            viewCache,
		Tokens:           auth.NewTokenService(auth.Config{JWTSecret: cfg.Auth.JWTSecret, TokenTTL: cfg.Auth.TokenTTL}),
		Payments:         gateway,
		Metrics:          metrics,
		APIDoc:           apiDoc,
		Logger:           logger,
		ProtectMutations: cfg.ProtectMutations,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     newServerErrorLog(logger.Named("http")),
	}

	// 优雅关闭
	errCh := make(chan error, 1)
	go func() {
		logger.Info("The server is running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// openStore 按驱动创建存储
func openStore(cfg *config.Config, logger *logging.Logger, metrics *server.Metrics) (storage.PersistentStore, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		logger.Warn("Using in-memory store, data is lost on restart")
		return memstore.New(), nil
	}
	store, err := mongostore.NewStore(cfg.DatabaseURL, cfg.DatabaseName,
		mongostore.WithLogger(logger.Named("mongostore")),
		mongostore.WithQueryObserver(metrics),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to MongoDB", "database", cfg.DatabaseName)
	return store, nil
}

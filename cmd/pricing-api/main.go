// README: Entry point; loads config, wires the pricing engine and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"towpricing/internal/clients/casesvc"
	"towpricing/internal/clients/crm"
	"towpricing/internal/config"
	httptransport "towpricing/internal/http"
	"towpricing/internal/infra"
	"towpricing/internal/maps"
	"towpricing/internal/modules/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("db init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	distanceSvc, err := maps.NewDistanceService(cfg.Maps.APIKey)
	if err != nil {
		logger.Fatal("maps init", zap.Error(err))
	}
	legs := maps.NewCachedDistance(distanceSvc, redisClient, cfg.Redis.LegCache, logger.Named("legs"))

	pricingSvc := pricing.NewService(pricing.Deps{
		Store:     pricing.NewStore(dbPool),
		Distance:  legs,
		RateCards: crm.New(cfg.CRM.BaseURL, cfg.CRM.Timeout),
		Charges:   casesvc.New(cfg.Case.BaseURL, cfg.Case.Timeout),
		TaxName:   cfg.Pricing.TaxName,
		Logger:    logger.Named("pricing"),
	})

	gin.SetMode(gin.ReleaseMode)
	handler := httptransport.NewRouter(pricingSvc, logger.Named("http"), map[string]httptransport.HealthCheck{
		"postgres": dbPool.Ping,
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server", zap.Error(err))
	}
}

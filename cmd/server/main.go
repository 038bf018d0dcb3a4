package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/server/internal/api"
	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/server/internal/quotefeed"
	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/server/internal/registry"
	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/server/internal/resolver"
	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := config.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	reg := registry.New()
	res := resolver.New(cfg.Provider)

	source := resolver.SourceMock
	if cfg.Provider.APIKey != "" {
		source = resolver.SourceLive
	}
	logger.Info("Price resolution configured", zap.String("source", source))

	var feed quotefeed.Feed = quotefeed.Nop{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		feed = quotefeed.NewRedisFeed(rdb)
		logger.Info("Quote feed enabled", zap.String("addr", cfg.Redis.Addr))
	}

	srv := &http.Server{
		Addr:    cfg.App.Port,
		Handler: api.NewServer(logger, reg, res, feed),
	}

	go func() {
		logger.Info("Server Started", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP Error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	srv.Shutdown(context.Background())
	if err := feed.Close(); err != nil {
		logger.Error("Error closing quote feed", zap.Error(err))
	}
	logger.Info("Shutdown Complete")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mzhuravlev/shopcourse/internal/config"
	"github.com/mzhuravlev/shopcourse/internal/handlers"
	"github.com/mzhuravlev/shopcourse/internal/observability"
	"github.com/mzhuravlev/shopcourse/internal/platform/logger"
	"github.com/mzhuravlev/shopcourse/internal/server"
	"github.com/mzhuravlev/shopcourse/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	metrics := observability.New()
	catalog := store.NewCatalogStore(log)
	carts := store.NewCartStore(log, catalog)

	router := server.NewShopRouter(server.ShopRouterConfig{
		Log:         log,
		Metrics:     metrics,
		Items:       handlers.NewItemHandler(catalog, metrics),
		Carts:       handlers.NewCartHandler(carts, metrics),
		CORSOrigins: cfg.CORSOrigins,
	})

	api := &http.Server{
		Addr:              cfg.Shop.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Shop.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.Shop.IdleTimeout.Duration,
	}
	// The metrics endpoint also gets its own listener so scrapes keep working
	// when the API port is saturated.
	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: cfg.Shop.ReadHeaderTimeout.Duration,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, log, cfg.Shop.ShutdownTimeout.Duration, api, metricsSrv); err != nil {
		log.Fatal("shop service failed", "error", err)
	}
}

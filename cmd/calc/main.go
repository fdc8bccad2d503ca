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
	"github.com/mzhuravlev/shopcourse/internal/platform/logger"
	"github.com/mzhuravlev/shopcourse/internal/server"
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

	router := server.NewCalcRouter(server.CalcRouterConfig{
		Log:  log,
		Calc: handlers.NewCalcHandler(),
	})

	api := &http.Server{
		Addr:              cfg.Calc.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Calc.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.Calc.IdleTimeout.Duration,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, log, cfg.Calc.ShutdownTimeout.Duration, api); err != nil {
		log.Fatal("calc service failed", "error", err)
	}
}

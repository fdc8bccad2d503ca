package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mzhuravlev/shopcourse/internal/config"
	"github.com/mzhuravlev/shopcourse/internal/handlers"
	"github.com/mzhuravlev/shopcourse/internal/middleware"
	"github.com/mzhuravlev/shopcourse/internal/platform/logger"
	"github.com/mzhuravlev/shopcourse/internal/server"
	"github.com/mzhuravlev/shopcourse/internal/store"
	"github.com/mzhuravlev/shopcourse/internal/types"
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

	users := store.NewUserStore(log, nil)

	// Bootstrap admin: a fresh store has nobody who could pass the admin
	// gate on /user-promote otherwise.
	if _, err := users.Register(types.UserInfo{
		Username:  cfg.Admin.Username,
		Name:      "Service Admin",
		Birthdate: types.Birthdate{Time: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)},
		Role:      types.RoleAdmin,
		Password:  cfg.Admin.Password,
	}); err != nil {
		log.Fatal("failed to seed admin user", "error", err)
	}

	router := server.NewUserRouter(server.UserRouterConfig{
		Log:         log,
		Auth:        middleware.NewAuth(log, users),
		Users:       handlers.NewUserHandler(users),
		CORSOrigins: cfg.CORSOrigins,
	})

	api := &http.Server{
		Addr:              cfg.Users.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Users.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.Users.IdleTimeout.Duration,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, log, cfg.Users.ShutdownTimeout.Duration, api); err != nil {
		log.Fatal("user service failed", "error", err)
	}
}

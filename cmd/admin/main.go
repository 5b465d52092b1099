package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-commerce-backend/internal/app"
	"go-commerce-backend/internal/core/config"
	"go-commerce-backend/internal/core/logger"
	"go-commerce-backend/internal/core/server"
	"go-commerce-backend/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, shutdown := app.MustBuild(ctx, cfg, log)
	defer shutdown()

	r := router.NewAdminEngine(log, a.Handlers, a.JWT, cfg.App.IsProduction(), a.RequestLog)

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 15*time.Second, 60*time.Second, 60*time.Second)

	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.Bool("production", cfg.App.IsProduction()),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()
	log.Info("admin api started SUCCESS")

	<-ctx.Done()
	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	log.Info("admin api stopped gracefully")
}

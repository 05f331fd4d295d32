package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/segyhp/landsale-engine/internal/app"
	"github.com/segyhp/landsale-engine/internal/config"
	"github.com/segyhp/landsale-engine/internal/handler"
	"github.com/segyhp/landsale-engine/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	application, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	saleHandler := handler.NewSaleHandler(application.Sales)
	parcelHandler := handler.NewParcelHandler(application.Parcel)
	healthHandler := handler.NewHealthHandler(application.DB, func(ctx context.Context) error {
		return application.Redis.Ping(ctx).Err()
	}, cfg.GetHealthTimeout())

	router := handler.NewRouter(saleHandler, parcelHandler, healthHandler, log)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}

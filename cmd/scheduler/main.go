package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/segyhp/landsale-engine/internal/app"
	"github.com/segyhp/landsale-engine/internal/config"
	"github.com/segyhp/landsale-engine/pkg/logger"
	"github.com/segyhp/landsale-engine/pkg/utils"
)

// jobTimeout bounds a single late-payment sweep
const jobTimeout = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting land sale scheduler")

	application, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	location := cfg.GetSchedulerLocation()
	c := cron.New(
		cron.WithParser(config.CronParser),
		cron.WithLocation(location),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if err := setupCronJobs(c, cfg, application, location, log); err != nil {
		log.Error("failed to schedule jobs", "error", err)
		os.Exit(1)
	}

	c.Start()
	log.Info("scheduler started", "late_payment_spec", cfg.Scheduler.LatePaymentSpec, "timezone", location.String())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down scheduler")
	<-c.Stop().Done()
	log.Info("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, application *app.App, location *time.Location, log *slog.Logger) error {
	_, err := c.AddFunc(cfg.Scheduler.LatePaymentSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		asOf := utils.TruncateToDay(time.Now().In(location))
		result, err := application.Sales.MarkLatePayments(ctx, asOf)
		if err != nil {
			log.Error("late payment job failed", "error", err)
			return
		}
		log.Info("late payment job finished", "as_of", result.AsOf, "sales", result.Sales)
	})
	return err
}

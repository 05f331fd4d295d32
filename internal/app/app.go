package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/landsale-engine/internal/cache"
	"github.com/segyhp/landsale-engine/internal/config"
	"github.com/segyhp/landsale-engine/internal/repository"
	"github.com/segyhp/landsale-engine/internal/service"
)

// App holds the connections and services shared by the server and scheduler
type App struct {
	DB     *sqlx.DB
	Redis  *redis.Client
	Sales  *service.SaleService
	Parcel *service.ParcelService
}

// New connects to postgres and redis and wires repositories and services
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := initDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	redisClient, err := initRedis(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing redis: %w", err)
	}

	parcelRepo := repository.NewParcelRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	saleCache := cache.NewRedisSaleCache(redisClient, cfg.Cache.SaleTTL)

	return &App{
		DB:     db,
		Redis:  redisClient,
		Sales:  service.NewSaleService(saleRepo, paymentRepo, parcelRepo, saleCache, cfg, logger),
		Parcel: service.NewParcelService(parcelRepo, logger),
	}, nil
}

// Close releases the database and redis connections
func (a *App) Close() error {
	redisErr := a.Redis.Close()
	if err := a.DB.Close(); err != nil {
		return err
	}
	return redisErr
}

func initDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opts), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}), nil
}

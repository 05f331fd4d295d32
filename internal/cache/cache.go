package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/landsale-engine/internal/domain"
)

var (
	// ErrMiss is returned when a key is not cached
	ErrMiss = errors.New("cache miss")
	// ErrStale is returned when a sale was invalidated after its generation was read
	ErrStale = errors.New("cache entry invalidated during load")
)

// generationTTL keeps a sale's invalidation counter well past any in-flight load.
const generationTTL = 24 * time.Hour

// SaleCache stores rendered sale detail keyed by sale ID.
//
// Every Invalidate bumps a per-sale generation. A reader takes Generation
// before loading from the database and hands it to SetSaleDetail, which only
// writes if no invalidation happened in between.
type SaleCache interface {
	GetSaleDetail(ctx context.Context, saleID uuid.UUID) (*domain.SaleDetailResponse, error)
	Generation(ctx context.Context, saleID uuid.UUID) (int64, error)
	SetSaleDetail(ctx context.Context, detail *domain.SaleDetailResponse, generation int64) error
	Invalidate(ctx context.Context, saleID uuid.UUID) error
}

type redisSaleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSaleCache(client *redis.Client, ttl time.Duration) SaleCache {
	return &redisSaleCache{client: client, ttl: ttl}
}

func saleDetailKey(saleID uuid.UUID) string {
	return fmt.Sprintf("sale:%s:detail", saleID)
}

func saleGenerationKey(saleID uuid.UUID) string {
	return fmt.Sprintf("sale:%s:gen", saleID)
}

func (c *redisSaleCache) GetSaleDetail(ctx context.Context, saleID uuid.UUID) (*domain.SaleDetailResponse, error) {
	raw, err := c.client.Get(ctx, saleDetailKey(saleID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var detail domain.SaleDetailResponse
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, fmt.Errorf("decode cached sale %s: %w", saleID, err)
	}

	return &detail, nil
}

func (c *redisSaleCache) Generation(ctx context.Context, saleID uuid.UUID) (int64, error) {
	return readGeneration(ctx, c.client, saleGenerationKey(saleID))
}

func (c *redisSaleCache) SetSaleDetail(ctx context.Context, detail *domain.SaleDetailResponse, generation int64) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return err
	}

	genKey := saleGenerationKey(detail.Sale.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != generation {
			return ErrStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, saleDetailKey(detail.Sale.ID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

func (c *redisSaleCache) Invalidate(ctx context.Context, saleID uuid.UUID) error {
	genKey := saleGenerationKey(saleID)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, saleDetailKey(saleID))
		return nil
	})
	return err
}

// getter is satisfied by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, client getter, key string) (int64, error) {
	gen, err := client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

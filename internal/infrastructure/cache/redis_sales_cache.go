package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/sales-insights/internal/domain/entity"
	"github.com/jhoicas/sales-insights/internal/domain/repository"
	"github.com/jhoicas/sales-insights/pkg/config"
	"github.com/jhoicas/sales-insights/pkg/logger"
)

var _ repository.SalesSource = (*SalesCache)(nil)

const keyPrefix = "sales-insights:sales"

// Store subconjunto de comandos Redis que usa la caché (*redis.Client lo implementa).
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// SalesCache decorador de SalesSource: guarda cada lista por tipo y ventana durante TTL.
// Redis es una optimización: si falla se registra y se consulta la fuente directamente.
type SalesCache struct {
	next  repository.SalesSource
	store Store
	ttl   time.Duration
	log   *logger.Logger
}

// NewSalesCache construye el decorador.
func NewSalesCache(next repository.SalesSource, store Store, ttl time.Duration, log *logger.Logger) *SalesCache {
	if log == nil {
		log = logger.Nop()
	}
	return &SalesCache{next: next, store: store, ttl: ttl, log: log.Component("sales_cache")}
}

// NewRedisClient abre el cliente Redis y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

func (c *SalesCache) ListStoreSales(ctx context.Context, q repository.SalesQuery) ([]entity.StoreSale, error) {
	return cached(ctx, c, entity.SaleKindStore, q, c.next.ListStoreSales)
}

func (c *SalesCache) ListOnlineSales(ctx context.Context, q repository.SalesQuery) ([]entity.OnlineSale, error) {
	return cached(ctx, c, entity.SaleKindOnline, q, c.next.ListOnlineSales)
}

func (c *SalesCache) ListAdvanceSales(ctx context.Context, q repository.SalesQuery) ([]entity.AdvanceSale, error) {
	return cached(ctx, c, entity.SaleKindAdvance, q, c.next.ListAdvanceSales)
}

// Key clave Redis de una lista de ventas para la ventana pedida.
func Key(kind entity.SaleKind, q repository.SalesQuery) string {
	return fmt.Sprintf("%s:%s:%d:%d", keyPrefix, kind, unix(q.From), unix(q.To))
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func cached[T any](
	ctx context.Context,
	c *SalesCache,
	kind entity.SaleKind,
	q repository.SalesQuery,
	load func(context.Context, repository.SalesQuery) ([]T, error),
) ([]T, error) {
	key := Key(kind, q)

	raw, err := c.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var items []T
		jsonErr := json.Unmarshal(raw, &items)
		if jsonErr == nil {
			c.log.Debug().Str("key", key).Int("items", len(items)).Msg("cache hit")
			return items, nil
		}
		c.log.Warn().Err(jsonErr).Str("key", key).Msg("entrada de caché corrupta")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible; se consulta la fuente")
	}

	items, err := load(ctx, q)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(items)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("serializar ventas para caché")
		return items, nil
	}
	if err := c.store.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("guardar en caché")
	}
	return items, nil
}

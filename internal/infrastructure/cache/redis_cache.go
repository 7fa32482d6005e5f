// Package cache implementa el caché de lectura del catálogo sobre Redis.
// Cualquier falla de Redis degrada a lectura de BD: el caché nunca es fuente
// de verdad y sus errores no se propagan al caso de uso.
package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/tu-usuario/pos-pro/internal/application/usecase"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/pkg/logger"
)

var _ usecase.ItemCache = (*RedisItemCache)(nil)

// cachedItem es la forma serializada del ítem con su receta.
type cachedItem struct {
	Item   entity.Item         `json:"item"`
	Recipe []entity.RecipeLine `json:"recipe"`
}

// RedisItemCache caché de ítems con TTL sobre Redis.
type RedisItemCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisItemCache construye el caché. ttl en cero usa 5 minutos.
func NewRedisItemCache(addr, password string, db int, ttl time.Duration, log *logger.Logger) *RedisItemCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisItemCache{client: client, ttl: ttl, log: log}
}

// Ping verifica la conexión con Redis.
func (c *RedisItemCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra la conexión con Redis.
func (c *RedisItemCache) Close() error {
	return c.client.Close()
}

func itemKey(itemID string) string {
	return "item:" + itemID
}

// Get devuelve el ítem cacheado con su receta, si existe.
func (c *RedisItemCache) Get(ctx context.Context, itemID string) (*entity.Item, []entity.RecipeLine, bool) {
	val, err := c.client.Get(ctx, itemKey(itemID)).Result()
	if err == redis.Nil {
		return nil, nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("item_id", itemID).Msg("caché de ítems: fallo de lectura, degradando a BD")
		return nil, nil, false
	}
	var cached cachedItem
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		c.log.Warn().Err(err).Str("item_id", itemID).Msg("caché de ítems: entrada corrupta, descartando")
		c.client.Del(ctx, itemKey(itemID))
		return nil, nil, false
	}
	return &cached.Item, cached.Recipe, true
}

// Set guarda el ítem con su receta.
func (c *RedisItemCache) Set(ctx context.Context, item *entity.Item, recipe []entity.RecipeLine) {
	if item == nil {
		return
	}
	payload, err := json.Marshal(cachedItem{Item: *item, Recipe: recipe})
	if err != nil {
		c.log.Warn().Err(err).Str("item_id", item.ID).Msg("caché de ítems: fallo al serializar")
		return
	}
	if err := c.client.Set(ctx, itemKey(item.ID), payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("item_id", item.ID).Msg("caché de ítems: fallo de escritura")
	}
}

// Invalidate elimina la entrada del ítem. Se invoca al cambiar precio o receta.
func (c *RedisItemCache) Invalidate(ctx context.Context, itemID string) {
	if err := c.client.Del(ctx, itemKey(itemID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("item_id", itemID).Msg("caché de ítems: fallo al invalidar")
	}
}

var _ usecase.ItemCache = (*NoopItemCache)(nil)

// NoopItemCache caché nulo para pruebas y despliegues sin Redis.
type NoopItemCache struct{}

func (NoopItemCache) Get(_ context.Context, _ string) (*entity.Item, []entity.RecipeLine, bool) {
	return nil, nil, false
}

func (NoopItemCache) Set(_ context.Context, _ *entity.Item, _ []entity.RecipeLine) {}

func (NoopItemCache) Invalidate(_ context.Context, _ string) {}

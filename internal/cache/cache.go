// Package cache guarda en Redis las respuestas de lectura del catálogo.
// Un *Cache nil o sin cliente no hace nada: Redis es opcional.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "standburg:"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New conecta a REDIS_URL. Con url vacía devuelve un cache deshabilitado.
func New(url string, ttl time.Duration) (*Cache, error) {
	if url == "" {
		return &Cache{}, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL inválida: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("no se pudo conectar a Redis: %w", err)
	}

	return NewWithClient(client, ttl), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl, logger: zap.L().Named("cache")}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetJSON carga la clave en dst. Devuelve false ante un miss o cualquier error.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}

	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.Warn("lectura de cache fallida", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// entrada corrupta
		_ = c.client.Del(ctx, keyPrefix+key).Err()
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("escritura de cache fallida", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate borra las claves dadas y todas las que empiecen con prefix.
func (c *Cache) Invalidate(ctx context.Context, prefix string) {
	if !c.Enabled() {
		return
	}

	iter := c.client.Scan(ctx, 0, keyPrefix+prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("scan de cache fallido", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("invalidación de cache fallida", zap.String("prefix", prefix), zap.Error(err))
		}
	}
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}

// JSONCache guarda payloads JSON no Redis com TTL por chave
// Todas as chaves recebem o prefixo configurado (ex: "a1:api:")
type JSONCache struct {
	R      *redis.Client
	Prefix string
}

func NewJSONCache(r *redis.Client, prefix string) *JSONCache {
	return &JSONCache{R: r, Prefix: prefix}
}

func (c *JSONCache) key(k string) string { return c.Prefix + k }

// Get desserializa o valor em dst; retorna false quando a chave não existe
func (c *JSONCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *JSONCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, c.key(key), b, ttl).Err()
}

// Delete remove todas as chaves que começam com key (ex: variações de query)
func (c *JSONCache) Delete(ctx context.Context, key string) error {
	iter := c.R.Scan(ctx, 0, c.key(key)+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.R.Del(ctx, keys...).Err()
}

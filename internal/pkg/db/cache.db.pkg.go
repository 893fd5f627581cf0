package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-gorm/caches/v4"
	_redis "github.com/redis/go-redis/v9"
)

// redisCacher backs the gorm query cache with redis so cached reads
// survive restarts and are shared between instances.
type redisCacher struct {
	rdb       *_redis.Client
	cacheTime time.Duration
}

func (c *redisCacher) Get(ctx context.Context, key string, q *caches.Query[any]) (*caches.Query[any], error) {
	res, err := c.rdb.Get(ctx, key).Result()
	if err == _redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := q.Unmarshal([]byte(res)); err != nil {
		return nil, err
	}

	return q, nil
}

func (c *redisCacher) Store(ctx context.Context, key string, val *caches.Query[any]) error {
	res, err := val.Marshal()
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, res, c.cacheTime).Err()
}

func (c *redisCacher) Invalidate(ctx context.Context) error {
	var (
		cursor uint64
		keys   []string
	)
	for {
		var batch []string
		var err error
		batch, cursor, err = c.rdb.Scan(ctx, cursor, fmt.Sprintf("%s*", caches.IdentifierPrefix), 0).Result()
		if err != nil {
			return err
		}
		keys = append(keys, batch...)
		if cursor == 0 {
			break
		}
	}

	if len(keys) > 0 {
		return c.rdb.Del(ctx, keys...).Err()
	}
	return nil
}

// memoryCacher is the fallback when no redis client is wired in.
type memoryCacher struct {
	store sync.Map
}

func (c *memoryCacher) Get(_ context.Context, key string, q *caches.Query[any]) (*caches.Query[any], error) {
	val, ok := c.store.Load(key)
	if !ok {
		return nil, nil
	}

	if err := q.Unmarshal(val.([]byte)); err != nil {
		return nil, err
	}

	return q, nil
}

func (c *memoryCacher) Store(_ context.Context, key string, val *caches.Query[any]) error {
	res, err := val.Marshal()
	if err != nil {
		return err
	}

	c.store.Store(key, res)
	return nil
}

func (c *memoryCacher) Invalidate(_ context.Context) error {
	c.store.Range(func(key, _ any) bool {
		c.store.Delete(key)
		return true
	})
	return nil
}

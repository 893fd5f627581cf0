package redis

import (
	"context"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

// NilType is the sentinel returned by the driver for missing keys.
var NilType = _redis.Nil

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	PoolSize int
}

type Client struct {
	Client *_redis.Client
	ctx    context.Context
	cancel context.CancelFunc
	config *Config
}

type IRedis interface {
	Close() error
	Set(key string, value any, expiration time.Duration) error
	Get(key string) (string, error)
	Del(key string) error
	Expire(key string, expiration time.Duration) error
}

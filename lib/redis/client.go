package redis

import (
	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

// NewClient creates the shared Redis client used for one-shot tokens.
func NewClient(addr, password string, db int) *redis.Client {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return Rdb
}

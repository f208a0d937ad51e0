package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the client used for cross-instance message
// broadcast.
func InitRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis connection failed: %v", err)
	}

	return rdb
}

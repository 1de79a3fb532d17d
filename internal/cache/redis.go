package cache

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Client is nil when Redis is unreachable; callers must treat caching and
// rate limiting as disabled in that case.
var Client *redis.Client

func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := Client.Ping(context.Background()).Result(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v. Caching disabled.", err)
		Client = nil
		return
	}

	log.Println("Redis connected successfully")
}

func SetTestClient(c *redis.Client) {
	Client = c
}

package database

import (
	"cake_admin/config"
	"log"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
		log.Println("REDIS_ADDR not set, using localhost:6379")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
		DB:       config.ConfigInt("REDIS_DB", 0),
	})
	log.Println("Redis initialized with address:", addr)
}

package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/gsualumni/alumninet/internal/bootstrap"
	"github.com/gsualumni/alumninet/internal/config"
	"github.com/gsualumni/alumninet/internal/server"
	"github.com/gsualumni/alumninet/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db := database.Connect()

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedUsers(db); err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedEvents(db); err != nil {
			log.Fatalf("failed to seed events: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, rate limiting and live notifications disabled")
	}

	srv := server.NewServer(cfg, db, redisClient)
	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

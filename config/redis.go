package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

func ConnectRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
		log.Warn().Str("url", redisURL).Msg("⚠️  REDIS_URL not set, using local Redis")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ invalid REDIS_URL")
	}

	RedisClient = redis.NewClient(opt)

	res, err := RedisClient.Ping(Ctx).Result()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ failed to connect to Redis")
	}
	log.Info().Str("ping", res).Msg("✅ Connected to Redis")
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}

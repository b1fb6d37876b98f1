package app

import (
	"context"
	"database/sql"

	"auth-gateway/internal/config"
	"auth-gateway/internal/db"
	"auth-gateway/internal/logger"
	"auth-gateway/internal/redis"

	_ "github.com/lib/pq"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client // nil unless the redis session backend is selected
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	infra := &Infra{DB: &db.DB{DB: sqlDB}}

	if cfg.SessionBackend == "redis" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}

		logger.Info("redis ready", nil)

		infra.Redis = redisClient
	}

	return infra, nil
}

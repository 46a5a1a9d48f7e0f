package util

import (
	"database/sql"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

type DBConfig struct {
	DSN string
}

func NewDBConfig() *DBConfig {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	return &DBConfig{DSN: dsn}
}

type RedisConfig struct {
	Addr string
}

func NewRedisConfig() *RedisConfig {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Fatal("REDIS_ADDR is not set")
	}
	return &RedisConfig{Addr: addr}
}

// NewDBConnection opens and pings the postgres pool. The returned cleanup
// closes the pool and is safe to defer from main.
func NewDBConnection(logger *zap.SugaredLogger, cfg *DBConfig) (*sql.DB, func(), error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, nil, err
	}

	logger.Info("connected to postgres")

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Errorf("closing postgres pool: %v", err)
		}
	}
	return db, cleanup, nil
}

func NewRedisClient(logger *zap.SugaredLogger, cfg *RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})

	logger.Info("connected to redis")

	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Errorf("closing redis client: %v", err)
		}
	}
	return client, cleanup, nil
}

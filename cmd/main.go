package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/avelichko/authd/internal/api"
	"github.com/avelichko/authd/internal/controller"
	"github.com/avelichko/authd/internal/migrations"
	"github.com/avelichko/authd/internal/service"
	"github.com/avelichko/authd/internal/storage/postgres"
	redisstore "github.com/avelichko/authd/internal/storage/redis"
	"github.com/avelichko/authd/internal/util"

	_ "github.com/lib/pq"
)

func main() {
	ctx := context.Background()
	logger := util.NewZapLogger()

	db, dbCleanup, err := util.NewDBConnection(logger, util.NewDBConfig())
	if err != nil {
		logger.Fatal(zap.Error(err))
	}
	if err := migrations.RunMigrations(db, logger); err != nil {
		logger.Fatal(zap.Error(err))
	}

	storage := postgres.NewStorage(db)
	cleanupFuncs := []func(){dbCleanup}

	tokenConfig := util.NewTokenConfig()
	tokenService, err := service.NewTokenService(tokenConfig)
	if err != nil {
		logger.Fatal(zap.Error(err))
	}
	authService := service.NewAuthService(tokenService, storage, tokenConfig, logger)

	var apiKeys *redisstore.APIKeyStore
	if key := util.GetAPIKey(); key != "" {
		redisClient, redisCleanup, err := util.NewRedisClient(logger, util.NewRedisConfig())
		if err != nil {
			logger.Fatal(zap.Error(err))
		}
		cleanupFuncs = append(cleanupFuncs, redisCleanup)

		apiKeys = redisstore.NewAPIKeyStore(redisClient)
		if err := apiKeys.Sync(ctx, key); err != nil {
			logger.Fatal(zap.Error(err))
		}
	} else {
		logger.Warn("AUTH_SERVICE_API_KEY is not set; API key guard disabled")
	}

	ctrl := controller.NewController(logger, authService)

	apiServer := api.NewAPI(ctrl, tokenService, apiKeys, util.NewServerConfig(), logger, cleanupFuncs)
	apiServer.Run(ctx)
}

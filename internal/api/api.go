package api

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	oapimiddleware "github.com/oapi-codegen/echo-middleware"
	"go.uber.org/zap"

	"github.com/avelichko/authd/internal/controller"
	"github.com/avelichko/authd/internal/service"
	redisstore "github.com/avelichko/authd/internal/storage/redis"
	"github.com/avelichko/authd/internal/util"
)

const shutdownTimeout = 5 * time.Second

type API struct {
	server          *echo.Echo
	controller      *controller.Controller
	tokens          *service.TokenService
	apiKeys         *redisstore.APIKeyStore
	log             *zap.SugaredLogger
	gracefulTimeout time.Duration
	cleanupFuncs    []func()
}

// NewAPI builds the echo server. apiKeys may be nil, which disables the
// service-to-service guard (local runs, tests).
func NewAPI(
	c *controller.Controller,
	tokens *service.TokenService,
	apiKeys *redisstore.APIKeyStore,
	sc *util.ServerConfig,
	l *zap.SugaredLogger,
	cleanupFuncs []func(),
) *API {
	e := echo.New()

	e.Server.Addr = sc.ServerAddr
	e.Server.WriteTimeout = sc.WriteTimeout
	e.Server.ReadTimeout = sc.ReadTimeout
	e.Server.IdleTimeout = sc.IdleTimeout
	e.HTTPErrorHandler = ErrorHandler(l)

	return &API{
		server:          e,
		controller:      c,
		tokens:          tokens,
		apiKeys:         apiKeys,
		log:             l,
		gracefulTimeout: sc.GracefulTimeout,
		cleanupFuncs:    cleanupFuncs,
	}
}

func (a *API) Run(ctxBackground context.Context) {
	ctx, stop := signal.NotifyContext(ctxBackground, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	swagger, err := controller.GetSwagger()
	if err != nil {
		a.log.Fatalf("Failed to load OpenAPI specification: %v", err)
	}
	swagger.Servers = nil

	a.server.Use(echomiddleware.RequestLoggerWithConfig(GetLoggerMiddlewareConfig(a)))
	if a.apiKeys != nil {
		a.server.Use(APIKeyAuthMiddleware(a.apiKeys))
	}

	g := a.server.Group("/api", oapimiddleware.OapiRequestValidator(swagger))
	controller.RegisterHandlers(g, a.controller, BearerAuthMiddleware(a.tokens))

	a.ListenGracefulShutdown(ctx)
}

func (a *API) ListenGracefulShutdown(ctx context.Context) {
	go func() {
		err := a.server.Start(a.server.Server.Addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()
	a.log.Infof("Listening on: %s", a.server.Server.Addr)

	<-ctx.Done()
	a.log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("shutdown: %v", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}
	a.log.Info("server shutdown completed")
}

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/avelichko/authd/internal/models"
	"github.com/avelichko/authd/internal/service"
	redisstore "github.com/avelichko/authd/internal/storage/redis"
)

const APIKeyHeader = "X-API-Key"

// APIKeyAuthMiddleware guards service-to-service calls with the shared key
// kept in redis.
func APIKeyAuthMiddleware(keys *redisstore.APIKeyStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "API key is missing")
			}

			ok, err := keys.Validate(c.Request().Context(), apiKey)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "error validating API key")
			}
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid API key")
			}
			return next(c)
		}
	}
}

// BearerAuthMiddleware decodes the presented access token and stores its
// subject in the request context. Signature and expiry failures surface as
// 401 through the central error handler.
func BearerAuthMiddleware(tokens *service.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := tokens.Decode(token)
			if err != nil {
				return err
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}
			c.Set(models.MwUserIDKey, userID)
			return next(c)
		}
	}
}

func GetLoggerMiddlewareConfig(a *API) echomiddleware.RequestLoggerConfig {
	return echomiddleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,

		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", c.Request().Method,
				"uri", v.URI,
				"status", v.Status,
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				a.log.Errorw("Request", fields...)
			} else {
				a.log.Infow("Request", fields...)
			}
			return nil
		},
	}
}

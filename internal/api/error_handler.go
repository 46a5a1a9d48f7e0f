package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/avelichko/authd/internal/controller"
	"github.com/avelichko/authd/internal/service"
)

// ErrorHandler maps business outcomes to client responses. Anything outside
// the known set is an infrastructure fault and stays a 500.
func ErrorHandler(log *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if isUnauthorizedError(err) {
			c.JSON(http.StatusUnauthorized, controller.ErrorResponse{Reason: err.Error()})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code == http.StatusInternalServerError {
				log.Errorw("HTTP error", "error", err, "uri", c.Request().RequestURI)
			}
			if err := c.JSON(he.Code, controller.ErrorResponse{Reason: fmt.Sprintf("%v", he.Message)}); err != nil {
				log.Errorw("failed to write json response", "error", err)
			}
			return
		}

		log.Errorw("unhandled error", "error", err, "uri", c.Request().RequestURI)
		c.JSON(http.StatusInternalServerError, controller.ErrorResponse{Reason: "internal server error"})
	}
}

func isUnauthorizedError(err error) bool {
	return errors.Is(err, service.ErrInvalidCredentials) ||
		errors.Is(err, service.ErrInvalidToken) ||
		errors.Is(err, service.ErrTokenExpired) ||
		errors.Is(err, service.ErrInvalidSignature) ||
		errors.Is(err, service.ErrAccessTokenExpired)
}

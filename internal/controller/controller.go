package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/avelichko/authd/internal/models"
	"github.com/avelichko/authd/internal/service"
)

type Controller struct {
	zapLogger   *zap.SugaredLogger
	authService *service.AuthService
}

func NewController(logger *zap.SugaredLogger, authService *service.AuthService) *Controller {
	return &Controller{
		zapLogger:   logger,
		authService: authService,
	}
}

// RegisterHandlers wires the routes onto an already configured group. The
// bearer middleware guards only routes that authorize via access token.
func RegisterHandlers(g *echo.Group, c *Controller, bearer echo.MiddlewareFunc) {
	g.GET("/ping", c.CheckServer)
	g.POST("/login", c.Login)
	g.POST("/token/refresh", c.RefreshToken)
	g.POST("/logout", c.Logout)
	g.GET("/me", c.Me, bearer)
}

// (GET /api/ping).
func (c *Controller) CheckServer(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, "ok")
}

// (POST /api/login). Credential check and token issuance stay two separate
// service calls; this handler is the composed call site.
func (c *Controller) Login(ctx echo.Context) error {
	var req models.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := c.authService.Authenticate(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	pair, err := c.authService.IssueTokens(ctx.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pair)
}

// (POST /api/token/refresh).
func (c *Controller) RefreshToken(ctx echo.Context) error {
	var req models.RefreshRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	pair, err := c.authService.Refresh(ctx.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pair)
}

// (POST /api/logout).
func (c *Controller) Logout(ctx echo.Context) error {
	var req models.LogoutRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.authService.Logout(ctx.Request().Context(), req.RefreshToken); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// (GET /api/me). The subject comes from the bearer middleware.
func (c *Controller) Me(ctx echo.Context) error {
	userID, ok := ctx.Get(models.MwUserIDKey).(int64)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token subject")
	}
	return ctx.JSON(http.StatusOK, models.MeResponse{UserID: userID})
}

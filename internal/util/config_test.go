package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewServerConfig_Defaults(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("WRITE_TIMEOUT", "")

	cfg := NewServerConfig()
	require.Equal(t, defaultServerAddr, cfg.ServerAddr)
	require.Equal(t, defaultWriteTimeout, cfg.WriteTimeout)
}

func TestNewServerConfig_FromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:9000")
	t.Setenv("READ_TIMEOUT", "2s")

	cfg := NewServerConfig()
	require.Equal(t, "0.0.0.0:9000", cfg.ServerAddr)
	require.Equal(t, 2*time.Second, cfg.ReadTimeout)
}

func TestNewTokenConfig_FromEnv(t *testing.T) {
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/jwt.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/jwt.pub.pem")
	t.Setenv("ACCESS_TOKEN_TTL", "10m")
	t.Setenv("REFRESH_TOKEN_TTL", "")
	t.Setenv("TOKEN_TYPE", "")

	cfg := NewTokenConfig()
	require.Equal(t, "/keys/jwt.pem", cfg.PrivateKeyPath)
	require.Equal(t, 10*time.Minute, cfg.AccessTTL)
	require.Equal(t, defaultRefreshTTL, cfg.RefreshTTL)
	require.Equal(t, defaultTokenType, cfg.TokenType)
}

func TestParseDurationOrDefault_Invalid(t *testing.T) {
	t.Setenv("IDLE_TIMEOUT", "not-a-duration")
	require.Equal(t, defaultIdleTimeout, parseDurationOrDefault("IDLE_TIMEOUT", defaultIdleTimeout))
}

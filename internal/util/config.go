package util

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

//nolint:gochecknoglobals // here its ok
var once sync.Once

func init() {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	})
}

const (
	defaultServerAddr      = "localhost:8080"
	defaultWriteTimeout    = 10 * time.Second
	defaultReadTimeout     = 10 * time.Second
	defaultIdleTimeout     = 30 * time.Second
	defaultGracefulTimeout = 5 * time.Second

	defaultAccessTTL  = 5 * time.Minute
	defaultRefreshTTL = 30 * 24 * time.Hour
	defaultTokenType  = "bearer"

	// 48 random bytes come out as 64 url-safe chars, 384 bits of entropy.
	RefreshTokenBytes = 48
)

type ServerConfig struct {
	ServerAddr      string
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
}

func NewServerConfig() *ServerConfig {
	addr := os.Getenv("SERVER_ADDRESS")
	if addr == "" {
		addr = defaultServerAddr
	}

	return &ServerConfig{
		ServerAddr:      addr,
		WriteTimeout:    parseDurationOrDefault("WRITE_TIMEOUT", defaultWriteTimeout),
		ReadTimeout:     parseDurationOrDefault("READ_TIMEOUT", defaultReadTimeout),
		IdleTimeout:     parseDurationOrDefault("IDLE_TIMEOUT", defaultIdleTimeout),
		GracefulTimeout: parseDurationOrDefault("GRACEFUL_TIMEOUT", defaultGracefulTimeout),
	}
}

type TokenConfig struct {
	PrivateKeyPath string
	PublicKeyPath  string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	TokenType      string
}

func NewTokenConfig() *TokenConfig {
	privatePath := os.Getenv("JWT_PRIVATE_KEY_PATH")
	if privatePath == "" {
		log.Fatal("JWT_PRIVATE_KEY_PATH is not set")
	}
	publicPath := os.Getenv("JWT_PUBLIC_KEY_PATH")
	if publicPath == "" {
		log.Fatal("JWT_PUBLIC_KEY_PATH is not set")
	}

	tokenType := os.Getenv("TOKEN_TYPE")
	if tokenType == "" {
		tokenType = defaultTokenType
	}

	return &TokenConfig{
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
		AccessTTL:      parseDurationOrDefault("ACCESS_TOKEN_TTL", defaultAccessTTL),
		RefreshTTL:     parseDurationOrDefault("REFRESH_TOKEN_TTL", defaultRefreshTTL),
		TokenType:      tokenType,
	}
}

// GetAPIKey returns the service-to-service API key; empty disables the guard.
func GetAPIKey() string {
	return os.Getenv("AUTH_SERVICE_API_KEY")
}

func parseDurationOrDefault(varName string, def time.Duration) time.Duration {
	if v := os.Getenv(varName); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Invalid duration in %s: %s, using default %s", varName, v, def)
	}
	return def
}

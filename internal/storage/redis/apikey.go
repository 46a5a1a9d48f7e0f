package redis

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	currentKeyName  = "authd:apikey:current"
	previousKeyName = "authd:apikey:previous"

	// Clients holding the pre-rotation key keep working for this long.
	previousKeyGrace = 24 * time.Hour
)

// APIKeyStore keeps sha256 hashes of the service API key in Redis so that
// every instance of the service agrees on the current key after a rotation.
type APIKeyStore struct {
	client *redis.Client
}

func NewAPIKeyStore(client *redis.Client) *APIKeyStore {
	return &APIKeyStore{client: client}
}

// Sync publishes the configured key as current. If the stored key differs,
// the old hash is kept under previousKeyName for the grace window.
func (s *APIKeyStore) Sync(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("api key is empty")
	}
	hashed := hashKey(key)

	current, err := s.client.Get(ctx, currentKeyName).Result()
	if err == redis.Nil {
		if err := s.client.Set(ctx, currentKeyName, hashed, 0).Err(); err != nil {
			return fmt.Errorf("store api key: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read current api key: %w", err)
	}

	if current == hashed {
		return nil
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, previousKeyName, current, previousKeyGrace)
	pipe.Set(ctx, currentKeyName, hashed, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rotate api key: %w", err)
	}
	return nil
}

// Validate reports whether key matches the current or the still-graced
// previous API key.
func (s *APIKeyStore) Validate(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	hashed := hashKey(key)

	for _, name := range []string{currentKeyName, previousKeyName} {
		stored, err := s.client.Get(ctx, name).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("read api key %s: %w", name, err)
		}
		if len(stored) == len(hashed) &&
			subtle.ConstantTimeCompare([]byte(hashed), []byte(stored)) == 1 {
			return true, nil
		}
	}
	return false, nil
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

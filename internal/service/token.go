package service

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avelichko/authd/internal/util"
)

// TokenService is the access-token codec. Tokens are RS256 JWTs: the private
// key signs, the public key verifies, so verification can run in components
// that never hold the private key. Both keys are read once at construction
// and stay immutable for the process lifetime.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
	now        func() time.Time
}

func NewTokenService(cfg *util.TokenConfig) (*TokenService, error) {
	privatePEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	publicPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		accessTTL:  cfg.AccessTTL,
		now:        time.Now,
	}, nil
}

// Encode signs an access token for subject with the configured TTL.
func (ts *TokenService) Encode(subject string) (string, error) {
	return ts.EncodeWithTTL(subject, ts.accessTTL)
}

func (ts *TokenService) EncodeWithTTL(subject string, ttl time.Duration) (string, error) {
	now := ts.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(ts.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of an access token and returns its
// claims. Both checks are mandatory; there is no leeway, all comparisons use
// the service clock.
func (ts *TokenService) Decode(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodRS256.Alg() {
				return nil, ErrInvalidSigningMethod
			}
			return ts.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrAccessTokenExpired
		default:
			return nil, fmt.Errorf("parse token: %w", err)
		}
	}
	if !parsed.Valid {
		return nil, ErrInvalidSignature
	}
	return claims, nil
}

// GenerateRefreshToken returns an opaque URL-safe random string. It has no
// decode counterpart: its only meaning is the key under which a refresh
// session is stored.
func GenerateRefreshToken() (string, error) {
	raw := make([]byte, util.RefreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

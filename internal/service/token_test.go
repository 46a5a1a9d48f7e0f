package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avelichko/authd/internal/util"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return &TokenService{
		privateKey: key,
		publicKey:  &key.PublicKey,
		accessTTL:  ttl,
		now:        time.Now,
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	ttl := 5 * time.Minute
	ts := newTestTokenService(t, ttl)
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ts.now = func() time.Time { return issued }

	token, err := ts.Encode("42")
	require.NoError(t, err)

	claims, err := ts.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, ttl, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	require.NotEmpty(t, claims.ID)
}

func TestDecode_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(t, 5*time.Minute)

	expired, err := ts.EncodeWithTTL("1", -1*time.Second)
	require.NoError(t, err)
	_, err = ts.Decode(expired)
	require.ErrorIs(t, err, ErrAccessTokenExpired)

	fresh, err := ts.EncodeWithTTL("1", time.Hour)
	require.NoError(t, err)
	_, err = ts.Decode(fresh)
	require.NoError(t, err)
}

func TestDecode_WrongKey(t *testing.T) {
	t.Parallel()

	signer := newTestTokenService(t, 5*time.Minute)
	verifier := newTestTokenService(t, 5*time.Minute)

	token, err := signer.Encode("7")
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(t, 5*time.Minute)

	_, err := ts.Decode("not.a.jwt")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrAccessTokenExpired))
}

func TestNewTokenService_LoadsKeysFromPEM(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "jwt.pem")
	publicPath := filepath.Join(dir, "jwt.pub.pem")

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))

	ts, err := NewTokenService(&util.TokenConfig{
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
		AccessTTL:      time.Minute,
	})
	require.NoError(t, err)

	token, err := ts.Encode("abc")
	require.NoError(t, err)
	claims, err := ts.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "abc", claims.Subject)
}

func TestNewTokenService_MissingKeyFile(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(&util.TokenConfig{
		PrivateKeyPath: filepath.Join(t.TempDir(), "nope.pem"),
		PublicKeyPath:  filepath.Join(t.TempDir(), "nope.pub.pem"),
	})
	require.Error(t, err)
}

func TestGenerateRefreshToken_EntropyFloor(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		token, err := GenerateRefreshToken()
		require.NoError(t, err)

		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate refresh token after %d generations", i)
		}
		seen[token] = struct{}{}

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(raw), util.RefreshTokenBytes)
	}
}

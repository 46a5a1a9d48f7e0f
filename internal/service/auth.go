package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/avelichko/authd/internal/models"
	"github.com/avelichko/authd/internal/storage"
	"github.com/avelichko/authd/internal/util"
)

// AuthService composes the credential verifier, token codec, refresh token
// generator, and session store into the four public flows. Every flow runs
// its store calls inside exactly one transaction scope.
type AuthService struct {
	tokens     *TokenService
	storage    storage.Storage
	log        *zap.SugaredLogger
	tokenType  string
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(tokens *TokenService, st storage.Storage, cfg *util.TokenConfig, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		tokens:     tokens,
		storage:    st,
		log:        log,
		tokenType:  cfg.TokenType,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

// Authenticate checks the credentials and returns the matching user. It does
// not mint tokens: issuing is a separate step so callers can verify
// credentials without creating a session.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user *models.User

	err := s.storage.InTx(ctx, func(r storage.Repositories) error {
		found, err := r.FindUserByEmail(ctx, email)
		if errors.Is(err, storage.ErrUserNotFound) {
			// Same error and a full bcrypt compare on both failure
			// paths, so responses do not reveal whether the
			// account exists.
			VerifyPassword(password, dummyHash)
			return ErrInvalidCredentials
		}
		if err != nil {
			return err
		}
		if !VerifyPassword(password, found.HashedPassword) {
			return ErrInvalidCredentials
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// IssueTokens mints an access/refresh pair for userID and persists the
// refresh session. Existing sessions are untouched: a user may hold several
// concurrent sessions.
func (s *AuthService) IssueTokens(ctx context.Context, userID int64) (*models.TokenPair, error) {
	accessToken, err := s.tokens.Encode(strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, err
	}
	refreshToken, err := GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	session := models.RefreshSession{
		RefreshToken: refreshToken,
		UserID:       userID,
		ExpiresIn:    s.refreshTTL,
		CreatedAt:    s.now(),
	}
	if err := s.storage.InTx(ctx, func(r storage.Repositories) error {
		return r.CreateSession(ctx, session)
	}); err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    s.tokenType,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The
// refresh token itself is reused, not rotated: a leaked token stays valid
// until its original expiry or an explicit logout. Keep it that way —
// rotation would change the client contract.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var (
		user    *models.User
		expired bool
	)

	err := s.storage.InTx(ctx, func(r storage.Repositories) error {
		session, err := r.FindSession(ctx, refreshToken)
		if errors.Is(err, storage.ErrSessionNotFound) {
			return ErrInvalidToken
		}
		if err != nil {
			return err
		}

		if s.now().After(session.ExpiresAt()) {
			// Lazy purge: the commit of this delete is the only
			// garbage collection expired sessions get.
			expired = true
			s.log.Debugw("purging expired refresh session", "userID", session.UserID)
			return r.DeleteSession(ctx, refreshToken)
		}

		user, err = r.FindUserByID(ctx, session.UserID)
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrInvalidToken
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrTokenExpired
	}

	accessToken, err := s.tokens.Encode(strconv.FormatInt(user.ID, 10))
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    s.tokenType,
	}, nil
}

// Logout deletes the refresh session. Already-issued access tokens stay valid
// until their own exp; that is inherent to stateless access tokens.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	var expired bool

	err := s.storage.InTx(ctx, func(r storage.Repositories) error {
		session, err := r.FindSession(ctx, refreshToken)
		if errors.Is(err, storage.ErrSessionNotFound) {
			return ErrInvalidToken
		}
		if err != nil {
			return err
		}

		if s.now().After(session.ExpiresAt()) {
			expired = true
		}
		return r.DeleteSession(ctx, refreshToken)
	})
	if err != nil {
		return err
	}
	if expired {
		return ErrTokenExpired
	}
	return nil
}

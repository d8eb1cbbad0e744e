package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"shopease-server/models"
	"shopease-server/storage"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrNoSession means the bearer token maps to no valid session. Handlers
// answer it with 401; nothing about it is fatal.
var ErrNoSession = errors.New("no valid session")

// SessionStore owns the login session lifecycle. Credential checks are
// delegated to the remote demo API; what gets persisted here is the proof of
// authentication: token plus profile, one document per session.
type SessionStore struct {
	api    *DemoAPIClient
	store  storage.Store
	logger *zap.Logger
}

func NewSessionStore(api *DemoAPIClient, store storage.Store, logger *zap.Logger) *SessionStore {
	return &SessionStore{api: api, store: store, logger: logger}
}

// sessionKey hashes the token so the storage key stays short and
// filename-safe regardless of token length.
func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session_" + hex.EncodeToString(sum[:])
}

// Login authenticates against the remote API and persists the resulting
// session.
func (s *SessionStore) Login(ctx context.Context, username, password string) (models.Session, error) {
	user, token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return models.Session{}, err
	}

	sess := models.Session{AccessToken: token, User: user}
	if !sess.Valid() {
		return models.Session{}, fmt.Errorf("login response is missing token or profile")
	}
	if err := s.store.Put(ctx, sessionKey(token), sess); err != nil {
		return models.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	s.logger.Info("user logged in", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return sess, nil
}

// Validate resolves a bearer token to its session. A stored session that is
// malformed, mismatched or expired is cleared and reported as absent rather
// than surfaced as an error to the user.
func (s *SessionStore) Validate(ctx context.Context, token string) (models.Session, error) {
	if token == "" {
		return models.Session{}, ErrNoSession
	}

	var sess models.Session
	err := s.store.Get(ctx, sessionKey(token), &sess)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Session{}, ErrNoSession
	}
	if err != nil {
		return models.Session{}, err
	}

	if !sess.Valid() || sess.AccessToken != token || tokenExpired(token) {
		s.logger.Warn("clearing invalid persisted session", zap.Int("user_id", sess.User.ID))
		_ = s.store.Delete(ctx, sessionKey(token))
		return models.Session{}, ErrNoSession
	}
	return sess, nil
}

// Logout drops the session document. Logging out twice is fine.
func (s *SessionStore) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionKey(token))
}

// tokenExpired inspects the demo token's exp claim. The parse is unverified:
// the signing secret belongs to the remote API, all we can do locally is read
// the expiry. Tokens that are not JWTs carry no expiry we can check.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

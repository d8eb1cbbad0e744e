package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopease-server/models"
	"shopease-server/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newDemoAPIStub stands in for the remote demo API. Any credentials other
// than emilys/emilyspass are rejected with the upstream's message shape.
func newDemoAPIStub(t *testing.T, token string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		if req.Username != "emilys" || req.Password != "emilyspass" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":          1,
			"username":    "emilys",
			"email":       "emily@example.com",
			"firstName":   "Emily",
			"lastName":    "Johnson",
			"gender":      "female",
			"image":       "https://example.com/emily.png",
			"accessToken": token,
		})
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ProductList{
			Products: []models.Product{
				{ID: 1, Title: "Essence Mascara", Price: 9.99, DiscountPercentage: 7.17, Rating: 4.94, Stock: 5},
			},
			Total: 1, Limit: 30,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return token
}

func newTestSessionStore(t *testing.T, token string) (*SessionStore, storage.Store) {
	t.Helper()
	srv := newDemoAPIStub(t, token)
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	api := NewDemoAPIClient(srv.URL, zap.NewNop())
	return NewSessionStore(api, store, zap.NewNop()), store
}

func TestLoginPersistsSession(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	sessions, _ := newTestSessionStore(t, token)
	ctx := context.Background()

	sess, err := sessions.Login(ctx, "emilys", "emilyspass")
	require.NoError(t, err)
	require.Equal(t, token, sess.AccessToken)
	require.Equal(t, "emilys", sess.User.Username)

	restored, err := sessions.Validate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, sess, restored)
}

func TestLoginFailureMapsUpstreamMessage(t *testing.T) {
	sessions, _ := newTestSessionStore(t, signedToken(t, time.Now().Add(time.Hour)))

	_, err := sessions.Login(context.Background(), "emilys", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestValidateUnknownToken(t *testing.T) {
	sessions, _ := newTestSessionStore(t, signedToken(t, time.Now().Add(time.Hour)))
	_, err := sessions.Validate(context.Background(), "never-issued")
	require.ErrorIs(t, err, ErrNoSession)
}

func TestMalformedPersistedSessionClearedNotSurfaced(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	sessions, store := newTestSessionStore(t, token)
	ctx := context.Background()

	// A token document without a profile: token present, user missing.
	require.NoError(t, store.Put(ctx, sessionKey(token), models.Session{AccessToken: token}))

	_, err := sessions.Validate(ctx, token)
	require.ErrorIs(t, err, ErrNoSession)

	// The broken document was cleared, not left behind.
	var leftover models.Session
	require.ErrorIs(t, store.Get(ctx, sessionKey(token), &leftover), storage.ErrNotFound)
}

func TestExpiredTokenTreatedAsLoggedOut(t *testing.T) {
	token := signedToken(t, time.Now().Add(-time.Hour))
	sessions, _ := newTestSessionStore(t, token)
	ctx := context.Background()

	_, err := sessions.Login(ctx, "emilys", "emilyspass")
	require.NoError(t, err)

	_, err = sessions.Validate(ctx, token)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestLogoutIsIdempotent(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	sessions, _ := newTestSessionStore(t, token)
	ctx := context.Background()

	_, err := sessions.Login(ctx, "emilys", "emilyspass")
	require.NoError(t, err)

	require.NoError(t, sessions.Logout(ctx, token))
	require.NoError(t, sessions.Logout(ctx, token))

	_, err = sessions.Validate(ctx, token)
	require.ErrorIs(t, err, ErrNoSession)
}

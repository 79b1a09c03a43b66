package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourin/storefront/internal/api"
	"github.com/tourin/storefront/internal/config"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/session"
)

type fakeAuthAPI struct {
	requests    int
	logoutCalls int
	token       string
}

func (f *fakeAuthAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		f.requests++
		payload := LoginPayload{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload.Password != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "wrong email or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"token":  f.token,
			"data":   User{ID: "u-1", Email: payload.Email, Role: "user"},
		})
	})
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		f.requests++
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	})
	mux.HandleFunc("GET /logout", func(w http.ResponseWriter, r *http.Request) {
		f.requests++
		f.logoutCalls++
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	})
	return mux
}

func newAuthFixture(t *testing.T) (*Service, *session.Store, *fakeAuthAPI) {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	fake := &fakeAuthAPI{token: token}
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	client := api.NewClient(config.Api{BaseUrl: server.URL, Key: "test-key"}, store)
	return NewService(client, store), store, fake
}

func TestLogin(t *testing.T) {
	t.Run("given valid credentials should persist the issued token", func(t *testing.T) {
		svc, store, fake := newAuthFixture(t)

		logged, err := svc.Login(context.Background(), "traveler@example.com", "hunter22")

		require.NoError(t, err)
		assert.Equal(t, "traveler@example.com", logged.Email)
		token, err := store.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fake.token, token)
	})

	t.Run("given malformed email should fail without network call", func(t *testing.T) {
		svc, _, fake := newAuthFixture(t)

		_, err := svc.Login(context.Background(), "not-an-email", "hunter22")

		assert.ErrorContains(t, err, "invalid login payload")
		assert.Zero(t, fake.requests)
	})

	t.Run("given wrong password should surface the server message and keep no token", func(t *testing.T) {
		svc, store, _ := newAuthFixture(t)

		_, err := svc.Login(context.Background(), "traveler@example.com", "wrong")

		assert.ErrorContains(t, err, "wrong email or password")
		_, err = store.Token(context.Background())
		assert.ErrorIs(t, err, inErrors.ErrTokenMissing)
	})
}

func TestRegister(t *testing.T) {
	valid := RegisterPayload{
		Email:          "traveler@example.com",
		Name:           "Traveler",
		Password:       "hunter22",
		PasswordRepeat: "hunter22",
		Role:           "user",
		PhoneNumber:    "0812000000",
	}

	tests := []struct {
		name    string
		mutate  func(p *RegisterPayload)
		wantErr bool
	}{
		{
			name:   "given complete payload should register",
			mutate: func(p *RegisterPayload) {},
		},
		{
			name:    "given mismatched password repeat should fail validation",
			mutate:  func(p *RegisterPayload) { p.PasswordRepeat = "different" },
			wantErr: true,
		},
		{
			name:    "given unknown role should fail validation",
			mutate:  func(p *RegisterPayload) { p.Role = "superadmin" },
			wantErr: true,
		},
		{
			name:    "given short password should fail validation",
			mutate:  func(p *RegisterPayload) { p.Password, p.PasswordRepeat = "abc", "abc" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, fake := newAuthFixture(t)
			payload := valid
			tt.mutate(&payload)

			err := svc.Register(context.Background(), payload)

			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid register payload")
				assert.Zero(t, fake.requests)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, fake.requests)
		})
	}
}

func TestLogout(t *testing.T) {
	t.Run("given stored token should call logout and clear it", func(t *testing.T) {
		svc, store, fake := newAuthFixture(t)
		_, err := svc.Login(context.Background(), "traveler@example.com", "hunter22")
		require.NoError(t, err)

		require.NoError(t, svc.Logout(context.Background()))

		assert.Equal(t, 1, fake.logoutCalls)
		_, err = store.Token(context.Background())
		assert.ErrorIs(t, err, inErrors.ErrTokenMissing)
	})

	t.Run("given no token should still clear locally", func(t *testing.T) {
		svc, store, fake := newAuthFixture(t)

		require.NoError(t, svc.Logout(context.Background()))

		assert.Zero(t, fake.logoutCalls)
		_, err := store.Token(context.Background())
		assert.ErrorIs(t, err, inErrors.ErrTokenMissing)
	})
}

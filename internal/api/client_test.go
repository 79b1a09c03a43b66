package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourin/storefront/internal/config"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/session"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func newClientWithToken(t *testing.T, baseUrl string, token string) *Client {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	if token != "" {
		require.NoError(t, store.Save(context.Background(), token))
	}
	return NewClient(config.Api{BaseUrl: baseUrl, Key: "test-key"}, store)
}

func TestClientHeaders(t *testing.T) {
	t.Run("given any request should send the api key header", func(t *testing.T) {
		var gotKey, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("apiKey")
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "OK", "data": []string{}})
		}))
		t.Cleanup(server.Close)
		client := newClientWithToken(t, server.URL, "")

		envelope := ListEnvelope[string]{}
		require.NoError(t, client.Get(context.Background(), "/categories", &envelope))

		assert.Equal(t, "test-key", gotKey)
		assert.Empty(t, gotAuth)
	})

	t.Run("given authed request should send the bearer token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "OK", "data": []string{}})
		}))
		t.Cleanup(server.Close)
		token := signedToken(t, time.Now().Add(time.Hour))
		client := newClientWithToken(t, server.URL, token)

		envelope := ListEnvelope[string]{}
		require.NoError(t, client.GetAuth(context.Background(), "/carts", &envelope))

		assert.Equal(t, "Bearer "+token, gotAuth)
	})
}

func TestClientAuthFailures(t *testing.T) {
	t.Run("given no stored token should fail before any request", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		t.Cleanup(server.Close)
		client := newClientWithToken(t, server.URL, "")

		err := client.GetAuth(context.Background(), "/carts", nil)

		assert.ErrorIs(t, err, inErrors.ErrTokenMissing)
		assert.Zero(t, requests)
	})

	t.Run("given expired token should fail before any request", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		t.Cleanup(server.Close)
		client := newClientWithToken(t, server.URL, signedToken(t, time.Now().Add(-time.Hour)))

		err := client.GetAuth(context.Background(), "/carts", nil)

		assert.ErrorIs(t, err, inErrors.ErrTokenExpired)
		assert.Zero(t, requests)
	})
}

func TestClientStatusError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       string
	}{
		{
			name:       "given error body with message should surface it verbatim",
			statusCode: http.StatusConflict,
			body:       `{"status":"CONFLICT","message":"cart already includes this activity"}`,
			want:       "cart already includes this activity",
		},
		{
			name:       "given error body without message should fall back to the status code",
			statusCode: http.StatusBadGateway,
			body:       `upstream timeout`,
			want:       "request failed with status=502",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)
			client := newClientWithToken(t, server.URL, "")

			err := client.Get(context.Background(), "/categories", nil)

			statusErr := &StatusError{}
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.statusCode, statusErr.StatusCode)
			assert.Equal(t, tt.want, statusErr.Error())
		})
	}
}

func TestClientUploadImage(t *testing.T) {
	t.Run("given an image should post multipart and return the hosted url", func(t *testing.T) {
		var gotField, gotFilename, gotContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, r.ParseMultipartForm(1<<20))
			for field, headers := range r.MultipartForm.File {
				gotField = field
				gotFilename = headers[0].Filename
			}
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status": "OK",
				"url":    "https://cdn.example.com/banner.png",
			})
		}))
		t.Cleanup(server.Close)
		client := newClientWithToken(t, server.URL, signedToken(t, time.Now().Add(time.Hour)))

		url, err := client.UploadImage(
			context.Background(),
			"/upload-image",
			"banner.png",
			strings.NewReader("fake image bytes"),
		)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/banner.png", url)
		assert.Equal(t, "image", gotField)
		assert.Equal(t, "banner.png", gotFilename)
		assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data"))
	})
}

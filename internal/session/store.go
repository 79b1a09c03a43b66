package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/log"
)

// Store keeps the bearer token issued by the login endpoint in a file so it
// survives between invocations. Only the auth flow writes it; everything else
// reads.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Token(c context.Context) (string, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store Token").
		Str(log.KeyTokenPath, s.path).
		Logger()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", inErrors.ErrTokenMissing
		}
		err = fmt.Errorf("failed reading token file with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", inErrors.ErrTokenMissing
	}
	return token, nil
}

func (s *Store) Save(c context.Context, token string) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store Save").
		Str(log.KeyTokenPath, s.path).
		Logger()

	logger.Info().Str(log.KeyProcess, "saving token").Msg("saving token")
	err := os.WriteFile(s.path, []byte(token), 0o600)
	if err != nil {
		err = fmt.Errorf("failed writing token file with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Str(log.KeyProcess, "saving token").Msg("saved token")
	return nil
}

func (s *Store) Clear(c context.Context) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store Clear").
		Str(log.KeyTokenPath, s.path).
		Logger()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		err = fmt.Errorf("failed removing token file with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}

// Expired inspects the stored token's exp claim without verifying the
// signature; the secret lives on the remote API. A token without an exp claim
// is treated as still valid.
func (s *Store) Expired(c context.Context) (bool, error) {
	token, err := s.Token(c)
	if err != nil {
		return false, err
	}

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		err = fmt.Errorf("failed parsing token with error=%w", err)
		return false, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		err = fmt.Errorf("failed reading exp claim with error=%w", err)
		return false, err
	}
	if exp == nil {
		return false, nil
	}
	return exp.Before(time.Now()), nil
}

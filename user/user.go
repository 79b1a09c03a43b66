package user

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tourin/storefront/internal/api"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/log"
	"github.com/tourin/storefront/internal/otel/trace"
	"github.com/tourin/storefront/internal/session"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	ProfilePictureUrl string `json:"profilePictureUrl"`
	PhoneNumber       string `json:"phoneNumber"`
}

type LoginPayload struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required"       json:"password"`
}

type RegisterPayload struct {
	Email          string `validate:"required,email"                  json:"email"`
	Name           string `validate:"required"                        json:"name"`
	Password       string `validate:"required,min=6"                  json:"password"`
	PasswordRepeat string `validate:"required,eqfield=Password"       json:"passwordRepeat"`
	Role           string `validate:"required,oneof=admin user"       json:"role"`
	PhoneNumber    string `json:"phoneNumber"`
}

// Service is the auth flow; it is the only writer of the session token store.
type Service struct {
	client *api.Client
	tokens *session.Store
}

func NewService(client *api.Client, tokens *session.Store) *Service {
	return &Service{client: client, tokens: tokens}
}

// Login exchanges credentials for a bearer token and persists it.
func (s *Service) Login(c context.Context, email string, password string) (User, error) {
	c, span := trace.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, email).
		Logger()

	payload := LoginPayload{Email: email, Password: password}
	if err := validate.Struct(payload); err != nil {
		err = fmt.Errorf("invalid login payload with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}

	logger.Info().Str(log.KeyProcess, "logging in").Msg("logging in")
	envelope := api.Envelope[User]{}
	if err := s.client.PostAnon(c, "/login", payload, &envelope); err != nil {
		err = fmt.Errorf("failed logging in with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}
	logger.Info().Str(log.KeyProcess, "logging in").Msg("logged in")

	logger.Info().Str(log.KeyProcess, "saving token").Msg("saving token")
	if err := s.tokens.Save(c, envelope.Token); err != nil {
		err = fmt.Errorf("failed saving token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}
	logger.Info().Str(log.KeyProcess, "saving token").Msg("saved token")

	return envelope.Data, nil
}

func (s *Service) Register(c context.Context, payload RegisterPayload) error {
	c, span := trace.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, payload.Email).
		Logger()

	if err := validate.Struct(payload); err != nil {
		err = fmt.Errorf("invalid register payload with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger.Info().Str(log.KeyProcess, "registering").Msg("registering")
	if err := s.client.PostAnon(c, "/register", payload, nil); err != nil {
		err = fmt.Errorf("failed registering with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Str(log.KeyProcess, "registering").Msg("registered")
	return nil
}

// Logout tells the API goodbye and clears the stored token either way.
func (s *Service) Logout(c context.Context) error {
	c, span := trace.Tracer.Start(c, "UserService Logout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Logout").
		Logger()

	logger.Info().Str(log.KeyProcess, "logging out").Msg("logging out")
	if err := s.client.GetAuth(c, "/logout", nil); err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msgf("failed logging out with error=%s", err.Error())
	}
	if err := s.tokens.Clear(c); err != nil {
		err = fmt.Errorf("failed clearing token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Str(log.KeyProcess, "logging out").Msg("logged out")
	return nil
}

func (s *Service) Profile(c context.Context) (User, error) {
	c, span := trace.Tracer.Start(c, "UserService Profile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Profile").
		Logger()

	logger.Info().Str(log.KeyProcess, "fetching profile").Msg("fetching profile")
	envelope := api.Envelope[User]{}
	if err := s.client.GetAuth(c, "/user", &envelope); err != nil {
		err = fmt.Errorf("failed fetching profile with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}
	return envelope.Data, nil
}

// All lists every user for the admin back-office.
func (s *Service) All(c context.Context) ([]User, error) {
	c, span := trace.Tracer.Start(c, "UserService All")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService All").
		Logger()

	logger.Info().Str(log.KeyProcess, "fetching users").Msg("fetching users")
	envelope := api.ListEnvelope[User]{}
	if err := s.client.GetAuth(c, "/all-user", &envelope); err != nil {
		err = fmt.Errorf("failed fetching users with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return envelope.Data, nil
}

func (s *Service) UpdateRole(c context.Context, id string, role string) error {
	c, span := trace.Tracer.Start(c, "UserService UpdateRole")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateRole").
		Str(log.KeyEntityID, id).
		Logger()

	logger.Info().Str(log.KeyProcess, "updating role").Msg("updating role")
	body := struct {
		Role string `json:"role"`
	}{Role: role}
	if err := s.client.PostJSON(c, fmt.Sprintf("/update-user-role/%s", id), body, nil); err != nil {
		err = fmt.Errorf("failed updating role with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Str(log.KeyProcess, "updating role").Msg("updated role")
	return nil
}

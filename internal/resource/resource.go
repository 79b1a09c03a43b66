package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tourin/storefront/internal/api"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/log"
	"github.com/tourin/storefront/internal/otel/trace"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Endpoints holds the CRUD quadruplet for one entity type. Update and Delete
// are format strings taking the record id. AuthedList marks list endpoints
// that require the bearer token on top of the apiKey header.
type Endpoints struct {
	List       string
	Create     string
	Update     string
	Delete     string
	AuthedList bool
}

// Collection owns the in-memory list for one entity type plus its loading and
// error state. After every successful mutation the whole list is refetched
// from the API; the server stays the single source of truth. Not safe for
// concurrent use; the storefront drives it from a single goroutine.
type Collection[T any] struct {
	name      string
	endpoints Endpoints
	client    *api.Client

	items    []T
	loading  bool
	errMsg   string
	mutating bool
}

func NewCollection[T any](name string, endpoints Endpoints, client *api.Client) *Collection[T] {
	return &Collection[T]{name: name, endpoints: endpoints, client: client}
}

func (h *Collection[T]) Items() []T {
	return h.items
}

func (h *Collection[T]) Loading() bool {
	return h.loading
}

// Err reports the message from the most recent failed load, empty after a
// successful one.
func (h *Collection[T]) Err() string {
	return h.errMsg
}

// Load replaces the collection with the server's list. On failure the prior
// items are kept and the error message recorded. Safe to call again as an
// explicit refresh.
func (h *Collection[T]) Load(c context.Context) error {
	c, span := trace.Tracer.Start(c, "Collection Load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Collection Load").
		Str(log.KeyEntity, h.name).
		Logger()

	h.loading = true
	defer func() { h.loading = false }()

	logger.Info().Str(log.KeyProcess, "fetching list").Msgf("fetching %s list", h.name)
	envelope := api.ListEnvelope[T]{}
	fetch := h.client.Get
	if h.endpoints.AuthedList {
		fetch = h.client.GetAuth
	}
	if err := fetch(c, h.endpoints.List, &envelope); err != nil {
		h.errMsg = err.Error()
		err = fmt.Errorf("failed fetching %s list with error=%w", h.name, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	h.items = envelope.Data
	h.errMsg = ""
	logger.Info().
		Str(log.KeyProcess, "fetching list").
		Msgf("fetched %d %s", len(h.items), h.name)
	return nil
}

// Create validates the payload's required fields before any network call,
// posts it, then refetches the list.
func (h *Collection[T]) Create(c context.Context, payload any) Result {
	c, span := trace.Tracer.Start(c, "Collection Create")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Collection Create").
		Str(log.KeyEntity, h.name).
		Logger()

	if h.mutating {
		inErrors.HandleError(inErrors.ErrMutationInFlight, span)
		logger.Error().
			Err(inErrors.ErrMutationInFlight).
			Msg(inErrors.ErrMutationInFlight.Error())
		return failed(inErrors.ErrMutationInFlight)
	}
	h.mutating = true
	defer func() { h.mutating = false }()

	if err := validate.Struct(payload); err != nil {
		err = requiredFields(err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return failed(err)
	}

	logger.Info().Str(log.KeyProcess, "creating").Msgf("creating %s", h.name)
	if err := h.client.PostJSON(c, h.endpoints.Create, payload, nil); err != nil {
		err = fmt.Errorf("failed creating %s with error=%w", h.name, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return failed(serverMessage(err))
	}
	logger.Info().Str(log.KeyProcess, "creating").Msgf("created %s", h.name)

	h.refetch(c, logger)
	return succeeded()
}

// Update has the same contract as Create, scoped to an existing id.
func (h *Collection[T]) Update(c context.Context, id string, payload any) Result {
	c, span := trace.Tracer.Start(c, "Collection Update")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Collection Update").
		Str(log.KeyEntity, h.name).
		Str(log.KeyEntityID, id).
		Logger()

	if h.mutating {
		inErrors.HandleError(inErrors.ErrMutationInFlight, span)
		logger.Error().
			Err(inErrors.ErrMutationInFlight).
			Msg(inErrors.ErrMutationInFlight.Error())
		return failed(inErrors.ErrMutationInFlight)
	}
	h.mutating = true
	defer func() { h.mutating = false }()

	if err := validate.Struct(payload); err != nil {
		err = requiredFields(err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return failed(err)
	}

	logger.Info().Str(log.KeyProcess, "updating").Msgf("updating %s", h.name)
	path := fmt.Sprintf(h.endpoints.Update, id)
	if err := h.client.PostJSON(c, path, payload, nil); err != nil {
		err = fmt.Errorf("failed updating %s with error=%w", h.name, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return failed(serverMessage(err))
	}
	logger.Info().Str(log.KeyProcess, "updating").Msgf("updated %s", h.name)

	h.refetch(c, logger)
	return succeeded()
}

// Delete removes the record server-side and refetches. Callers must not
// assume the record is gone from Items before the refetch lands.
func (h *Collection[T]) Delete(c context.Context, id string) Result {
	c, span := trace.Tracer.Start(c, "Collection Delete")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Collection Delete").
		Str(log.KeyEntity, h.name).
		Str(log.KeyEntityID, id).
		Logger()

	if h.mutating {
		inErrors.HandleError(inErrors.ErrMutationInFlight, span)
		logger.Error().
			Err(inErrors.ErrMutationInFlight).
			Msg(inErrors.ErrMutationInFlight.Error())
		return failed(inErrors.ErrMutationInFlight)
	}
	h.mutating = true
	defer func() { h.mutating = false }()

	logger.Info().Str(log.KeyProcess, "deleting").Msgf("deleting %s", h.name)
	path := fmt.Sprintf(h.endpoints.Delete, id)
	if err := h.client.Delete(c, path, nil); err != nil {
		err = fmt.Errorf("failed deleting %s with error=%w", h.name, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return failed(serverMessage(err))
	}
	logger.Info().Str(log.KeyProcess, "deleting").Msgf("deleted %s", h.name)

	h.refetch(c, logger)
	return succeeded()
}

// refetch resynchronizes after a successful mutation. A failed refetch leaves
// the mutation result untouched; Load records its own error state.
func (h *Collection[T]) refetch(c context.Context, logger zerolog.Logger) {
	if err := h.Load(c); err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "refetching").
			Msgf("failed refetching %s after mutation", h.name)
	}
}

// serverMessage unwraps to the API's message for a rejected request so views
// surface it verbatim.
func serverMessage(err error) error {
	statusErr := &api.StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr
	}
	return err
}

func requiredFields(err error) error {
	validationErrs := validator.ValidationErrors{}
	if !errors.As(err, &validationErrs) {
		return err
	}
	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, strings.ToLower(fieldErr.Field()))
	}
	return fmt.Errorf("required fields missing: %s", strings.Join(fields, ", "))
}

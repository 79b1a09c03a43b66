package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tourin/storefront/internal/api"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/log"
)

// Counter is the shared cart-count context: any component reads Count, only
// Refresh writes it.
type Counter struct {
	client *api.Client
	count  int
}

func NewCounter(client *api.Client) *Counter {
	return &Counter{client: client}
}

func (ct *Counter) Count() int {
	return ct.count
}

// Refresh recounts from the server. Without a stored token the count is zero,
// matching the logged-out navbar.
func (ct *Counter) Refresh(c context.Context) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Counter Refresh").
		Logger()

	envelope := api.ListEnvelope[json.RawMessage]{}
	err := ct.client.GetAuth(c, "/carts", &envelope)
	if err != nil {
		if errors.Is(err, inErrors.ErrTokenMissing) {
			ct.count = 0
			return nil
		}
		err = fmt.Errorf("failed fetching cart count with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	ct.count = len(envelope.Data)
	logger.Info().
		Int(log.KeyCartCount, ct.count).
		Msg("refreshed cart count")
	return nil
}

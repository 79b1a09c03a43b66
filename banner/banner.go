package banner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tourin/storefront/internal/api"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/log"
	"github.com/tourin/storefront/internal/otel/trace"
	"github.com/tourin/storefront/internal/resource"
)

type Banner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageUrl  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Payload requires both name and an image source before any network call.
type Payload struct {
	Name     string `validate:"required" json:"name"`
	ImageUrl string `validate:"required" json:"imageUrl"`
}

type Service struct {
	*resource.Collection[Banner]
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{
		Collection: resource.NewCollection[Banner]("banners", resource.Endpoints{
			List:   "/banners",
			Create: "/create-banner",
			Update: "/update-banner/%s",
			Delete: "/delete-banner/%s",
		}, client),
		client: client,
	}
}

// UploadImage pushes a local image to the upload endpoint and returns the
// hosted URL for the payload's imageUrl. Banner images are the one multipart
// surface in the storefront.
func (s *Service) UploadImage(c context.Context, path string) (string, error) {
	c, span := trace.Tracer.Start(c, "BannerService UploadImage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BannerService UploadImage").
		Str("imagePath", path).
		Logger()

	logger.Info().Str(log.KeyProcess, "opening image").Msg("opening image")
	file, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("failed opening image with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	defer file.Close()

	logger.Info().Str(log.KeyProcess, "uploading image").Msg("uploading image")
	url, err := s.client.UploadImage(c, "/upload-image", filepath.Base(path), file)
	if err != nil {
		err = fmt.Errorf("failed uploading image with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Str(log.KeyProcess, "uploading image").Msg("uploaded image")
	return url, nil
}

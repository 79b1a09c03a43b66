package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tourin/storefront/internal/api"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/log"
	"github.com/tourin/storefront/internal/otel/trace"
	"github.com/tourin/storefront/internal/resource"
)

type Activity struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"categoryId"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ImageUrls     []string        `json:"imageUrls"`
	Price         decimal.Decimal `json:"price"`
	PriceDiscount decimal.Decimal `json:"price_discount"`
	Rating        float64         `json:"rating"`
	TotalReviews  int             `json:"total_reviews"`
	Facilities    string          `json:"facilities"`
	Address       string          `json:"address"`
	Province      string          `json:"province"`
	City          string          `json:"city"`
	LocationMaps  string          `json:"location_maps"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Payload struct {
	CategoryID    string          `validate:"required" json:"categoryId"`
	Title         string          `validate:"required" json:"title"`
	Description   string          `json:"description"`
	ImageUrls     []string        `json:"imageUrls"`
	Price         decimal.Decimal `json:"price"`
	PriceDiscount decimal.Decimal `json:"price_discount"`
	Rating        float64         `json:"rating"`
	TotalReviews  int             `json:"total_reviews"`
	Facilities    string          `json:"facilities"`
	Address       string          `json:"address"`
	Province      string          `json:"province"`
	City          string          `json:"city"`
	LocationMaps  string          `json:"location_maps"`
}

type Service struct {
	*resource.Collection[Activity]
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{
		Collection: resource.NewCollection[Activity]("activities", resource.Endpoints{
			List:   "/activities",
			Create: "/create-activity",
			Update: "/update-activity/%s",
			Delete: "/delete-activity/%s",
		}, client),
		client: client,
	}
}

// ByCategory fetches the category browse view without touching the main
// collection.
func (s *Service) ByCategory(c context.Context, categoryID string) ([]Activity, error) {
	c, span := trace.Tracer.Start(c, "ActivityService ByCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ActivityService ByCategory").
		Str(log.KeyCategoryID, categoryID).
		Logger()

	logger.Info().
		Str(log.KeyProcess, "fetching activities by category").
		Msg("fetching activities by category")
	envelope := api.ListEnvelope[Activity]{}
	err := s.client.Get(c, fmt.Sprintf("/activities-by-category/%s", categoryID), &envelope)
	if err != nil {
		err = fmt.Errorf("failed fetching activities by category with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().
		Str(log.KeyProcess, "fetching activities by category").
		Msgf("fetched %d activities", len(envelope.Data))
	return envelope.Data, nil
}

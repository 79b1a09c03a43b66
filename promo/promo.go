package promo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourin/storefront/internal/api"
	"github.com/tourin/storefront/internal/resource"
)

type Promo struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	ImageUrl           string          `json:"imageUrl"`
	TermsCondition     string          `json:"terms_condition"`
	PromoCode          string          `json:"promo_code"`
	PromoDiscountPrice decimal.Decimal `json:"promo_discount_price"`
	MinimumClaimPrice  decimal.Decimal `json:"minimum_claim_price"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Payload carries the amounts as decimals so they serialize as JSON numbers;
// form input strings go through PayloadFromForm first.
type Payload struct {
	Title              string          `validate:"required" json:"title"`
	Description        string          `json:"description"`
	ImageUrl           string          `json:"imageUrl"`
	TermsCondition     string          `json:"terms_condition"`
	PromoCode          string          `validate:"required" json:"promo_code"`
	PromoDiscountPrice decimal.Decimal `json:"promo_discount_price"`
	MinimumClaimPrice  decimal.Decimal `json:"minimum_claim_price"`
}

// FormValues is the raw string state of the promo form.
type FormValues struct {
	Title              string
	Description        string
	ImageUrl           string
	TermsCondition     string
	PromoCode          string
	PromoDiscountPrice string
	MinimumClaimPrice  string
}

// PayloadFromForm coerces the numeric form fields; empty inputs become zero.
func PayloadFromForm(values FormValues) (Payload, error) {
	discount, err := parseAmount(values.PromoDiscountPrice)
	if err != nil {
		return Payload{}, fmt.Errorf("invalid promo_discount_price with error=%w", err)
	}
	minimum, err := parseAmount(values.MinimumClaimPrice)
	if err != nil {
		return Payload{}, fmt.Errorf("invalid minimum_claim_price with error=%w", err)
	}
	return Payload{
		Title:              values.Title,
		Description:        values.Description,
		ImageUrl:           values.ImageUrl,
		TermsCondition:     values.TermsCondition,
		PromoCode:          values.PromoCode,
		PromoDiscountPrice: discount,
		MinimumClaimPrice:  minimum,
	}, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

type Service struct {
	*resource.Collection[Promo]
}

func NewService(client *api.Client) *Service {
	return &Service{
		Collection: resource.NewCollection[Promo]("promos", resource.Endpoints{
			List:   "/promos",
			Create: "/create-promo",
			Update: "/update-promo/%s",
			Delete: "/delete-promo/%s",
		}, client),
	}
}

package category

import (
	"strings"
	"time"

	"github.com/tourin/storefront/internal/api"
	"github.com/tourin/storefront/internal/resource"
)

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageUrl  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Payload struct {
	Name     string `validate:"required" json:"name"`
	ImageUrl string `json:"imageUrl"`
}

// Service is the category resource hook; admin management and the landing
// page's category browser both bind to it.
type Service struct {
	*resource.Collection[Category]
}

func NewService(client *api.Client) *Service {
	return &Service{
		Collection: resource.NewCollection[Category]("categories", resource.Endpoints{
			List:   "/categories",
			Create: "/create-category",
			Update: "/update-category/%s",
			Delete: "/delete-category/%s",
		}, client),
	}
}

// FindByName matches case-insensitively; category routes key on the name.
func (s *Service) FindByName(name string) (Category, bool) {
	for _, cat := range s.Items() {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return Category{}, false
}

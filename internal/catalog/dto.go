package catalog

import (
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as exposed to the storefront. Name and Price are what an
// "add to cart" trigger sends.
type Product struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Flavour string          `json:"flavour"`
	Color   string          `json:"color"`
	Price   decimal.Decimal `json:"price"`
}

// ListResult is returned by the listing endpoint.
type ListResult struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

func productFromModel(m models.Product) Product {
	return Product{
		ID:      m.ID,
		Name:    m.Name,
		Flavour: m.Flavour,
		Color:   m.Color,
		Price:   m.Price,
	}
}

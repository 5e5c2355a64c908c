package catalog

import (
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name    string
	flavour string
	color   string
	price   string
}

var defaultProducts = []seedProduct{
	{name: "Classic Vanilla Candle", flavour: "vanilla", color: "white", price: "12.99"},
	{name: "Strawberry Fields Candle", flavour: "strawberry", color: "pink", price: "14.50"},
	{name: "Midnight Cocoa Candle", flavour: "chocolate", color: "brown", price: "16.00"},
	{name: "Mint Breeze Candle", flavour: "mint", color: "green", price: "11.25"},
	{name: "Vanilla Bean Wax Melt", flavour: "vanilla", color: "cream", price: "6.75"},
	{name: "Berry Blush Wax Melt", flavour: "strawberry", color: "red", price: "7.25"},
	{name: "Dark Chocolate Diffuser", flavour: "chocolate", color: "black", price: "24.00"},
	{name: "Peppermint Gift Set", flavour: "mint", color: "white", price: "39.99"},
}

// DefaultProducts returns the catalog seeded on first start, in display order.
func DefaultProducts() []models.Product {
	out := make([]models.Product, 0, len(defaultProducts))
	for i, p := range defaultProducts {
		out = append(out, models.Product{
			ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte("storefront:product:"+p.name)),
			Name:     p.name,
			Flavour:  p.flavour,
			Color:    p.color,
			Price:    decimal.RequireFromString(p.price),
			Position: i,
		})
	}
	return out
}

package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Filter narrows the product listing. Empty sets and a nil MaxPrice match everything.
type Filter struct {
	Query    string
	Flavours []string
	Colors   []string
	MaxPrice *decimal.Decimal
}

// Matches applies every knob: name contains Query case-insensitively, flavour and color
// are in their sets, and price does not exceed MaxPrice.
func (f Filter) Matches(p Product) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
		return false
	}
	if len(f.Flavours) > 0 && !contains(f.Flavours, p.Flavour) {
		return false
	}
	if len(f.Colors) > 0 && !contains(f.Colors, p.Color) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Apply keeps the matching products in their original order.
func (f Filter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

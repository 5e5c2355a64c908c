package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestFilterMatches(t *testing.T) {
	product := Product{Name: "Mint Breeze Candle", Flavour: "mint", Color: "green", Price: decimal.RequireFromString("11.25")}

	cases := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty filter", filter: Filter{}, want: true},
		{name: "query case-insensitive", filter: Filter{Query: "BREEZE"}, want: true},
		{name: "query miss", filter: Filter{Query: "cocoa"}, want: false},
		{name: "flavour in set", filter: Filter{Flavours: []string{"vanilla", "mint"}}, want: true},
		{name: "flavour not in set", filter: Filter{Flavours: []string{"vanilla"}}, want: false},
		{name: "color in set", filter: Filter{Colors: []string{"green"}}, want: true},
		{name: "color not in set", filter: Filter{Colors: []string{"red"}}, want: false},
		{name: "price at max", filter: Filter{MaxPrice: price("11.25")}, want: true},
		{name: "price above max", filter: Filter{MaxPrice: price("11.24")}, want: false},
		{name: "all knobs", filter: Filter{Query: "mint", Flavours: []string{"mint"}, Colors: []string{"green"}, MaxPrice: price("20")}, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(product))
		})
	}
}

func TestFilterApplyKeepsOrder(t *testing.T) {
	products := []Product{
		{Name: "A", Flavour: "mint"},
		{Name: "B", Flavour: "vanilla"},
		{Name: "C", Flavour: "mint"},
	}
	got := Filter{Flavours: []string{"mint"}}.Apply(products)
	assert.Equal(t, []Product{products[0], products[2]}, got)
	assert.NotNil(t, Filter{Query: "zzz"}.Apply(products))
}

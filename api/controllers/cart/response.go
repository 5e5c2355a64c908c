package cart

import (
	cartsvc "github.com/angelmondragon/storefront/internal/cart"
)

type cartResponse struct {
	Items      []cartsvc.Row `json:"items"`
	TotalCount int           `json:"total_count"`
	TotalPrice string        `json:"total_price"`
}

func newCartResponse(view cartsvc.View) cartResponse {
	items := view.Rows
	if items == nil {
		items = []cartsvc.Row{}
	}
	return cartResponse{
		Items:      items,
		TotalCount: view.TotalCount,
		TotalPrice: view.TotalPrice,
	}
}

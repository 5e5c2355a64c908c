package cart

import (
	"strings"

	cartsvc "github.com/angelmondragon/storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// addItemRequest mirrors an "add to cart" trigger: the product name and its price as text.
// Price stays a string so the cart, not the decoder, decides what a valid amount is.
type addItemRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Price string `json:"price" validate:"required,max=32"`
}

func parseAction(raw string) (cartsvc.ActionKind, error) {
	kind := cartsvc.ActionKind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case cartsvc.ActionIncrement, cartsvc.ActionDecrement, cartsvc.ActionDelete:
		return kind, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown cart action").
		WithDetails(map[string]any{"action": raw, "allowed": []string{"increment", "decrement", "delete"}})
}

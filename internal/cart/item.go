package cart

import (
	"encoding/base64"
	"regexp"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

// LineItem is one distinct product held in the cart. Name is the unique key.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// LineTotal returns UnitPrice × Quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ID is the stable opaque identifier used by action triggers instead of positions.
func (li LineItem) ID() string {
	return ItemID(li.Name)
}

// ItemID encodes a product name into a URL-safe identifier.
func ItemID(name string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(name))
}

// NameFromID reverses ItemID.
func NameFromID(id string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(id))
	if err != nil || len(raw) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid cart item id").WithDetails(map[string]any{"id": id})
	}
	return string(raw), nil
}

const (
	maxPriceScale = 4
	maxPriceText  = 32
)

// plainPrice admits digits with an optional fraction. No sign, no exponent.
var plainPrice = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// maxUnitPrice is the exclusive upper bound for a single unit.
var maxUnitPrice = decimal.NewFromInt(1_000_000_000)

// ParsePrice turns price text into a non-negative decimal with at most four fraction digits
// below maxUnitPrice. Anything else is INVALID_PRICE.
func ParsePrice(text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return decimal.Zero, invalidPrice(text, "price is required")
	case strings.HasPrefix(trimmed, "-"):
		return decimal.Zero, invalidPrice(text, "price must not be negative")
	case len(trimmed) > maxPriceText || !plainPrice.MatchString(trimmed):
		return decimal.Zero, invalidPrice(text, "price is not a plain decimal amount")
	}
	if dot := strings.IndexByte(trimmed, '.'); dot >= 0 && len(trimmed)-dot-1 > maxPriceScale {
		return decimal.Zero, invalidPrice(text, "price has too many decimal places")
	}
	price, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInvalidPrice, err, "price is not a number").WithDetails(map[string]any{"price": text})
	}
	if !price.LessThan(maxUnitPrice) {
		return decimal.Zero, invalidPrice(text, "price is too large")
	}
	return price, nil
}

func normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	return trimmed, nil
}

func invalidPrice(text, msg string) error {
	return pkgerrors.New(pkgerrors.CodeInvalidPrice, msg).WithDetails(map[string]any{"price": text})
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

func indexOf(items []LineItem, name string) int {
	for i, item := range items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

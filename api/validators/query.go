package validators

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

const maxQueryDecimalLen = 32

var plainDecimal = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// ParseQueryDecimal returns nil when the parameter is absent. Exponent notation is refused.
func ParseQueryDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	if len(raw) > maxQueryDecimalLen || !plainDecimal.MatchString(raw) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must not be negative").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// ParseQueryList accepts both repeated keys (?color=a&color=b) and comma-separated values.
func ParseQueryList(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if v := SanitizeString(part, maxQueryValueLen); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// ParsePathIndex reads a positional index from a chi URL parameter. Range checks belong to the cart.
func ParsePathIndex(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be an integer").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

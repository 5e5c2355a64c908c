package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// CatalogList filters the product listing by q, flavour, color and max_price.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "catalog is disabled"))
			return
		}

		maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.Filter{
			Query:    validators.SanitizeQuery(r.URL.Query().Get("q")),
			Flavours: validators.ParseQueryList(r, "flavour"),
			Colors:   validators.ParseQueryList(r, "color"),
			MaxPrice: maxPrice,
		}

		result, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

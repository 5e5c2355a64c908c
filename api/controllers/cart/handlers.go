package cart

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	cartsvc "github.com/angelmondragon/storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// CartFetch returns the session's cart as loaded from its slot.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(ctx context.Context, r *http.Request, sessionID string) (cartsvc.View, int, error) {
		view, err := svc.View(ctx, sessionID)
		return view, http.StatusOK, err
	})
}

// CartAddItem adds one unit of a product, creating the line when absent.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(ctx context.Context, r *http.Request, sessionID string) (cartsvc.View, int, error) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return cartsvc.View{}, 0, err
		}
		view, err := svc.Add(ctx, sessionID, payload.Name, payload.Price)
		return view, http.StatusOK, err
	})
}

func CartIncrementItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(ctx context.Context, r *http.Request, sessionID string) (cartsvc.View, int, error) {
		view, err := svc.Increment(ctx, sessionID, chi.URLParam(r, "itemId"))
		return view, http.StatusOK, err
	})
}

func CartDecrementItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(ctx context.Context, r *http.Request, sessionID string) (cartsvc.View, int, error) {
		view, err := svc.Decrement(ctx, sessionID, chi.URLParam(r, "itemId"))
		return view, http.StatusOK, err
	})
}

func CartDeleteItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(ctx context.Context, r *http.Request, sessionID string) (cartsvc.View, int, error) {
		view, err := svc.Delete(ctx, sessionID, chi.URLParam(r, "itemId"))
		return view, http.StatusOK, err
	})
}

// CartRowAction applies a positional trigger as rendered in the last view.
func CartRowAction(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(ctx context.Context, r *http.Request, sessionID string) (cartsvc.View, int, error) {
		index, err := validators.ParsePathIndex(r, "index")
		if err != nil {
			return cartsvc.View{}, 0, err
		}
		kind, err := parseAction(chi.URLParam(r, "action"))
		if err != nil {
			return cartsvc.View{}, 0, err
		}
		view, err := svc.ApplyAt(ctx, sessionID, kind, index)
		return view, http.StatusOK, err
	})
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(svc, logg, func(ctx context.Context, r *http.Request, sessionID string) (cartsvc.View, int, error) {
		view, err := svc.Clear(ctx, sessionID)
		return view, http.StatusOK, err
	})
}

// CartFragment renders the cart container as HTML for in-place replacement.
func CartFragment(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		view, err := svc.View(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteHTML(ctx, logg, w, http.StatusOK, func(buf *bytes.Buffer) error {
			return cartsvc.WriteFragment(buf, view)
		})
	}
}

type cartHandler func(ctx context.Context, r *http.Request, sessionID string) (cartsvc.View, int, error)

func withSession(svc cartsvc.Service, logg *logger.Logger, handle cartHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		view, status, err := handle(ctx, r, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, status, newCartResponse(view))
	}
}

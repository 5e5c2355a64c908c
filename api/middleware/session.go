package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/storefront/api/responses"
	pkgAuth "github.com/angelmondragon/storefront/pkg/auth"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Session resolves the browsing session from the session cookie, minting a new one when
// the cookie is missing, expired or forged.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				claims, err := pkgAuth.ParseSessionToken(cfg, cookie.Value)
				if err == nil {
					sessionID = claims.SessionID
				} else if logg != nil {
					logg.Warn(logg.WithField(ctx, "reason", err.Error()), "session.cookie_rejected")
				}
			}

			if sessionID == "" {
				token, claims, err := pkgAuth.MintSessionToken(cfg, time.Now().UTC(), "")
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session"))
					return
				}
				sessionID = claims.SessionID
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					Expires:  claims.ExpiresAt.Time,
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
				if logg != nil {
					logg.Info(logg.WithSessionID(ctx, sessionID), "session.minted")
				}
			}

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

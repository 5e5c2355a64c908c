package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/types"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by the db and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

const envHeader = "X-Storefront-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, types.HealthStatus{Status: "live", Env: cfg.App.Env})
	}
}

// HealthReady pings every configured dependency; nil pingers are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := types.HealthStatus{Status: "ready", Env: cfg.App.Env, Checks: map[string]string{}}
		var errs error
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				status.Checks[name] = err.Error()
				errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name))
				continue
			}
			status.Checks[name] = "ok"
		}

		if errs != nil {
			failed := pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "dependencies unavailable").WithDetails(status.Checks)
			responses.WriteError(r.Context(), logg, w, failed)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

package controllers

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/multierr"

	"github.com/adiwijaya/tokokita-backend/api/responses"
	"github.com/adiwijaya/tokokita-backend/pkg/config"
	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency labels a pinger for readiness reporting.
type Dependency struct {
	Name   string
	Pinger Pinger
}

// NamedPinger labels a dependency for readiness reporting.
func NamedPinger(name string, pinger Pinger) Dependency {
	return Dependency{Name: name, Pinger: pinger}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TokoKita-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every registered dependency and reports not-ready
// when any of them fails.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps ...Dependency) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TokoKita-Env", cfg.App.Env)

		var combined error
		for _, dep := range deps {
			if dep.Pinger == nil {
				continue
			}
			if err := dep.Pinger.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, fmt.Errorf("%s: %w", dep.Name, err))
			}
		}

		if combined != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependency not ready"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

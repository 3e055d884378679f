package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/openhouselabs/openhouse-backend/api/responses"
	pkgerrors "github.com/openhouselabs/openhouse-backend/pkg/errors"
	"github.com/openhouselabs/openhouse-backend/pkg/logger"
)

// Pinger is the connectivity probe used by readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(r.Context(), nil, w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by pinging the database.
func HealthReady(db Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, ""))
				return
			}
		}
		responses.WriteSuccess(r.Context(), logg, w, map[string]string{"status": "ready"})
	}
}

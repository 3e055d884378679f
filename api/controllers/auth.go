package controllers

import (
	"net/http"

	"github.com/openhouselabs/openhouse-backend/api/middleware"
	"github.com/openhouselabs/openhouse-backend/api/responses"
	"github.com/openhouselabs/openhouse-backend/api/validators"
	"github.com/openhouselabs/openhouse-backend/internal/auth"
	pkgerrors "github.com/openhouselabs/openhouse-backend/pkg/errors"
	"github.com/openhouselabs/openhouse-backend/pkg/logger"
)

// AuthRegister wires agent signup into the HTTP layer.
func AuthRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(r.Context(), logg, w, result)
	}
}

// AuthLogin wires agent login into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, result)
	}
}

// AuthMe returns the authenticated agent's public profile.
func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agent := middleware.AgentFromContext(r.Context())
		if agent == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "No token provided").
				WithReason("Authorization header with a bearer token is required"))
			return
		}

		result, err := svc.Me(r.Context(), agent.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, result)
	}
}

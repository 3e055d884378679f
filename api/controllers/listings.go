package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/api/middleware"
	"github.com/openhouselabs/openhouse-backend/api/responses"
	"github.com/openhouselabs/openhouse-backend/api/validators"
	"github.com/openhouselabs/openhouse-backend/internal/listings"
	pkgerrors "github.com/openhouselabs/openhouse-backend/pkg/errors"
	"github.com/openhouselabs/openhouse-backend/pkg/logger"
)

// CreateListing handles POST /api/listings.
func CreateListing(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID, err := requireAgent(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body listings.CreateListingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), agentID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(r.Context(), logg, w, result)
	}
}

// ListListings handles GET /api/listings.
func ListListings(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := validators.ParseListingQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), listings.ListFilters{
			MinPrice:      query.MinPrice,
			MaxPrice:      query.MaxPrice,
			MinSquareFeet: query.MinSquareFeet,
			MaxSquareFeet: query.MaxSquareFeet,
			ZipCode:       query.ZipCode,
			Status:        query.Status,
			SortColumn:    query.SortColumn,
			SortDesc:      query.SortDesc,
			Page:          query.Page,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, result)
	}
}

// GetListing handles GET /api/listings/{id}.
func GetListing(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseID(chi.URLParam(r, "id"), "listing")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, result)
	}
}

// UpdateListing handles PUT and PATCH /api/listings/{id}.
func UpdateListing(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID, err := requireAgent(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseID(chi.URLParam(r, "id"), "listing")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body listings.UpdateListingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), agentID, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, result)
	}
}

// DeleteListing handles DELETE /api/listings/{id}.
func DeleteListing(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID, err := requireAgent(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseID(chi.URLParam(r, "id"), "listing")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Delete(r.Context(), agentID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, map[string]any{
			"message": "Listing deleted",
			"listing": result,
		})
	}
}

func requireAgent(r *http.Request) (uuid.UUID, error) {
	agentID := middleware.AgentIDFromContext(r.Context())
	if agentID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "No token provided").
			WithReason("Authorization header with a bearer token is required")
	}
	return agentID, nil
}

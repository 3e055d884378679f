package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/api/responses"
	"github.com/openhouselabs/openhouse-backend/api/validators"
	"github.com/openhouselabs/openhouse-backend/internal/showings"
	"github.com/openhouselabs/openhouse-backend/pkg/logger"
)

// CreateShowing handles POST /api/showings. Public, no auth.
func CreateShowing(svc showings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body showings.CreateShowingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(r.Context(), logg, w, map[string]any{
			"message": "Showing request submitted successfully",
			"showing": result,
		})
	}
}

// ListShowings handles GET /api/showings for the authenticated agent.
func ListShowings(svc showings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID, err := requireAgent(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := showings.ListParams{
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("listingId")); raw != "" {
			listingID, err := validators.ParseID(raw, "listing")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			params.ListingID = &listingID
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.Page = page

		result, err := svc.List(r.Context(), agentID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, result)
	}
}

// PendingShowingsCount handles GET /api/showings/count/pending.
func PendingShowingsCount(svc showings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID, err := requireAgent(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.PendingCount(r.Context(), agentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, result)
	}
}

// GetShowing handles GET /api/showings/{id}. Public, no auth.
func GetShowing(svc showings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseShowingID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, map[string]any{
			"showing": result,
		})
	}
}

// UpdateShowingStatus handles PATCH /api/showings/{id} and its /status alias.
func UpdateShowingStatus(svc showings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID, err := requireAgent(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parseShowingID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body showings.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateStatus(r.Context(), agentID, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, map[string]any{
			"message": "Showing status updated successfully",
			"showing": result,
		})
	}
}

// UpdateShowingFeedback handles PATCH /api/showings/{id}/feedback.
func UpdateShowingFeedback(svc showings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID, err := requireAgent(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parseShowingID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body showings.FeedbackRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateFeedback(r.Context(), agentID, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), logg, w, map[string]any{
			"message": "Showing feedback updated successfully",
			"showing": result,
		})
	}
}

// DeleteShowing handles DELETE /api/showings/{id}.
func DeleteShowing(svc showings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID, err := requireAgent(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parseShowingID(r)
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
			"message": "Showing request deleted",
			"showing": result,
		})
	}
}

func parseShowingID(r *http.Request) (uuid.UUID, error) {
	return validators.ParseID(chi.URLParam(r, "id"), "showing")
}

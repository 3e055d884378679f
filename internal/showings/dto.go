package showings

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/internal/listings"
	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
	"github.com/openhouselabs/openhouse-backend/pkg/enums"
	"github.com/openhouselabs/openhouse-backend/pkg/pagination"
)

// CreateShowingRequest is the public payload for requesting a tour. The
// listing id arrives raw so format problems fail before any lookup; both the
// `listing` and `listingId` keys are accepted.
type CreateShowingRequest struct {
	Listing       string     `json:"listing"`
	ListingID     string     `json:"listingId"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	PreferredDate *time.Time `json:"preferredDate"`
	Message       string     `json:"message"`
}

// ListingRef returns the requested listing id, preferring the `listing` key
// when both are supplied.
func (r CreateShowingRequest) ListingRef() string {
	if ref := strings.TrimSpace(r.Listing); ref != "" {
		return ref
	}
	return strings.TrimSpace(r.ListingID)
}

// UpdateStatusRequest moves a showing through its lifecycle. ScheduledDate is
// only consulted when the resulting status is confirmed.
type UpdateStatusRequest struct {
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

// FeedbackRequest attaches agent feedback after a tour.
type FeedbackRequest struct {
	Feedback *string `json:"feedback"`
}

// ListParams carries the validated list inputs. ListingID narrows the result
// to one owned listing; Status is the raw filter value, validated in the
// service against the canonical set.
type ListParams struct {
	ListingID *uuid.UUID
	Status    string
	Page      pagination.Params
}

// PublicShowing is the caller-facing projection of a showing, with the
// listing (and its owning agent's public contact) populated when loaded.
type PublicShowing struct {
	ID            uuid.UUID               `json:"id"`
	ListingID     uuid.UUID               `json:"listingId"`
	Listing       *listings.PublicListing `json:"listing,omitempty"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	Phone         string                  `json:"phone"`
	PreferredDate time.Time               `json:"preferredDate"`
	Message       string                  `json:"message,omitempty"`
	Status        enums.ShowingStatus     `json:"status"`
	Feedback      string                  `json:"feedback,omitempty"`
	ScheduledAt   *time.Time              `json:"scheduledAt,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

// FromModel projects the stored showing into its public shape.
func FromModel(showing *models.Showing) PublicShowing {
	public := PublicShowing{
		ID:            showing.ID,
		ListingID:     showing.ListingID,
		Name:          showing.Name,
		Email:         showing.Email,
		Phone:         showing.Phone,
		PreferredDate: showing.PreferredDate,
		Message:       showing.Message,
		Status:        showing.Status,
		Feedback:      showing.Feedback,
		ScheduledAt:   showing.ScheduledAt,
		CreatedAt:     showing.CreatedAt,
		UpdatedAt:     showing.UpdatedAt,
	}
	if showing.Listing != nil {
		listing := listings.FromModel(showing.Listing)
		public.Listing = &listing
	}
	return public
}

// ListResult is the paginated list response.
type ListResult struct {
	Showings   []PublicShowing `json:"showings"`
	Count      int64           `json:"count"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Message    string          `json:"message,omitempty"`
}

// PendingCountResult wraps the pending-showings counter.
type PendingCountResult struct {
	Count int64 `json:"count"`
}

// DeleteResult is the confirmation returned after a permanent delete.
type DeleteResult struct {
	ID        uuid.UUID `json:"id"`
	ListingID uuid.UUID `json:"listing"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
}

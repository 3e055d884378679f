package listings

import (
	"time"

	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/internal/agents"
	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
	"github.com/openhouselabs/openhouse-backend/pkg/enums"
	"github.com/openhouselabs/openhouse-backend/pkg/pagination"
)

// CreateListingRequest is the payload for creating a listing. Pointers
// distinguish absent fields from zero values so missing price and price=0
// produce different validation messages.
type CreateListingRequest struct {
	Price      *float64 `json:"price"`
	Address    *string  `json:"address"`
	SquareFeet *float64 `json:"squareFeet"`
	ZipCode    *string  `json:"zipCode"`
	Status     *string  `json:"status"`
	Images     []string `json:"images"`
}

// UpdateListingRequest carries a partial update. Only non-nil fields are
// applied; Images replaces the whole array when present.
type UpdateListingRequest struct {
	Price      *float64  `json:"price"`
	Address    *string   `json:"address"`
	SquareFeet *float64  `json:"squareFeet"`
	ZipCode    *string   `json:"zipCode"`
	Status     *string   `json:"status"`
	Images     *[]string `json:"images"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r UpdateListingRequest) IsEmpty() bool {
	return r.Price == nil && r.Address == nil && r.SquareFeet == nil &&
		r.ZipCode == nil && r.Status == nil && r.Images == nil
}

// PublicListing is the caller-facing projection of a listing.
type PublicListing struct {
	ID         uuid.UUID           `json:"id"`
	Price      float64             `json:"price"`
	Address    string              `json:"address"`
	SquareFeet float64             `json:"squareFeet"`
	ZipCode    string              `json:"zipCode"`
	Status     enums.ListingStatus `json:"status"`
	Images     []string            `json:"images"`
	CreatedBy  *uuid.UUID          `json:"createdBy,omitempty"`
	Agent      *agents.PublicAgent `json:"agent,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// FromModel projects the stored listing, including the owning agent's public
// profile when the association was preloaded.
func FromModel(listing *models.Listing) PublicListing {
	images := make([]string, len(listing.Images))
	copy(images, listing.Images)

	public := PublicListing{
		ID:         listing.ID,
		Price:      listing.Price,
		Address:    listing.Address,
		SquareFeet: listing.SquareFeet,
		ZipCode:    listing.ZipCode,
		Status:     listing.Status,
		Images:     images,
		CreatedBy:  listing.CreatedBy,
		CreatedAt:  listing.CreatedAt,
		UpdatedAt:  listing.UpdatedAt,
	}
	if listing.Creator != nil {
		agent := agents.FromModel(listing.Creator)
		public.Agent = &agent
	}
	return public
}

// ListFilters carries the validated search parameters into the repository.
type ListFilters struct {
	MinPrice      *float64
	MaxPrice      *float64
	MinSquareFeet *float64
	MaxSquareFeet *float64
	ZipCode       string
	Status        *enums.ListingStatus
	SortColumn    string
	SortDesc      bool
	Page          pagination.Params
}

// ListResult is the paginated search response.
type ListResult struct {
	Listings   []PublicListing `json:"listings"`
	Pagination pagination.Meta `json:"pagination"`
	Message    string          `json:"message,omitempty"`
}

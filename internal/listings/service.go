package listings

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/pkg/db"
	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
	"github.com/openhouselabs/openhouse-backend/pkg/enums"
	pkgerrors "github.com/openhouselabs/openhouse-backend/pkg/errors"
	"github.com/openhouselabs/openhouse-backend/pkg/pagination"
)

const emptyListMessage = "No listings found matching your criteria"

var zipCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Service defines the behavior needed by the listings controller.
type Service interface {
	Create(ctx context.Context, agentID uuid.UUID, req CreateListingRequest) (*PublicListing, error)
	List(ctx context.Context, filters ListFilters) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*PublicListing, error)
	Update(ctx context.Context, agentID uuid.UUID, id uuid.UUID, req UpdateListingRequest) (*PublicListing, error)
	Delete(ctx context.Context, agentID uuid.UUID, id uuid.UUID) (*PublicListing, error)
}

type listingRepository interface {
	Create(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters ListFilters) ([]models.Listing, int64, error)
}

type service struct {
	listings listingRepository
}

// NewService constructs a listings service with the provided repository.
func NewService(repo listingRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("listing repository is required")
	}
	return &service{listings: repo}, nil
}

func (s *service) Create(ctx context.Context, agentID uuid.UUID, req CreateListingRequest) (*PublicListing, error) {
	details := map[string]string{}

	if req.Price == nil {
		details["price"] = "is required"
	} else if *req.Price < 0 {
		details["price"] = "must be at least 0"
	}

	address := ""
	if req.Address == nil || strings.TrimSpace(*req.Address) == "" {
		details["address"] = "is required"
	} else {
		address = strings.TrimSpace(*req.Address)
	}

	if req.SquareFeet == nil {
		details["squareFeet"] = "is required"
	} else if *req.SquareFeet < 0 {
		details["squareFeet"] = "must be at least 0"
	}

	zip := ""
	if req.ZipCode == nil || strings.TrimSpace(*req.ZipCode) == "" {
		details["zipCode"] = "is required"
	} else {
		zip = strings.TrimSpace(*req.ZipCode)
		if !zipCodePattern.MatchString(zip) {
			details["zipCode"] = "must be a 5-digit ZIP code"
		}
	}

	status := enums.ListingStatusActive
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		parsed, err := enums.ParseListingStatus(strings.TrimSpace(*req.Status))
		if err != nil {
			details["status"] = fmt.Sprintf("must be one of: %s", strings.Join(enums.ListingStatusValues(), ", "))
		} else {
			status = parsed
		}
	}

	if len(details) > 0 {
		return nil, validationError(details)
	}

	owner := agentID
	listing := &models.Listing{
		Price:      *req.Price,
		Address:    address,
		SquareFeet: *req.SquareFeet,
		ZipCode:    zip,
		Status:     status,
		Images:     cleanImages(req.Images),
		CreatedBy:  &owner,
	}

	created, err := s.listings.Create(ctx, listing)
	if err != nil {
		return nil, classify(err)
	}
	public := FromModel(created)
	return &public, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) (*ListResult, error) {
	if filters.Page.Page == 0 {
		filters.Page = pagination.Default()
	}

	rows, total, err := s.listings.List(ctx, filters)
	if err != nil {
		return nil, classify(err)
	}

	publics := make([]PublicListing, 0, len(rows))
	for i := range rows {
		publics = append(publics, FromModel(&rows[i]))
	}

	result := &ListResult{
		Listings:   publics,
		Pagination: pagination.MetaFor(filters.Page, total),
	}
	if total == 0 {
		result.Message = emptyListMessage
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PublicListing, error) {
	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	public := FromModel(listing)
	return &public, nil
}

func (s *service) Update(ctx context.Context, agentID uuid.UUID, id uuid.UUID, req UpdateListingRequest) (*PublicListing, error) {
	if req.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No update data provided").
			WithReason("Request body must include at least one field")
	}

	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(agentID) {
		return nil, accessDenied("You can only update your own listings")
	}

	details := map[string]string{}

	if req.Price != nil {
		if *req.Price < 0 {
			details["price"] = "must be at least 0"
		} else {
			listing.Price = *req.Price
		}
	}
	if req.Address != nil {
		trimmed := strings.TrimSpace(*req.Address)
		if trimmed == "" {
			details["address"] = "is required"
		} else {
			listing.Address = trimmed
		}
	}
	if req.SquareFeet != nil {
		if *req.SquareFeet < 0 {
			details["squareFeet"] = "must be at least 0"
		} else {
			listing.SquareFeet = *req.SquareFeet
		}
	}
	if req.ZipCode != nil {
		trimmed := strings.TrimSpace(*req.ZipCode)
		if !zipCodePattern.MatchString(trimmed) {
			details["zipCode"] = "must be a 5-digit ZIP code"
		} else {
			listing.ZipCode = trimmed
		}
	}
	if req.Status != nil {
		parsed, err := enums.ParseListingStatus(strings.TrimSpace(*req.Status))
		if err != nil {
			details["status"] = fmt.Sprintf("must be one of: %s", strings.Join(enums.ListingStatusValues(), ", "))
		} else {
			listing.Status = parsed
		}
	}
	if req.Images != nil {
		listing.Images = cleanImages(*req.Images)
	}

	if len(details) > 0 {
		return nil, validationError(details)
	}

	updated, err := s.listings.Update(ctx, listing)
	if err != nil {
		return nil, classify(err)
	}
	public := FromModel(updated)
	return &public, nil
}

func (s *service) Delete(ctx context.Context, agentID uuid.UUID, id uuid.UUID) (*PublicListing, error) {
	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(agentID) {
		return nil, accessDenied("You can only delete your own listings")
	}

	if err := s.listings.Delete(ctx, id); err != nil {
		return nil, classify(err)
	}
	public := FromModel(listing)
	return &public, nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Listing not found").
				WithReason("No listing exists with the provided ID")
		}
		return nil, classify(err)
	}
	return listing, nil
}

func validationError(details map[string]string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").
		WithReason("One or more fields failed validation").
		WithDetails(details)
}

// accessDenied puts the short tag in the payload's error field and the
// operation-specific explanation in message.
func accessDenied(message string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeForbidden, message).
		WithReason("Access denied")
}

func classify(err error) error {
	if db.IsUnavailable(err) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
}

func cleanImages(images []string) []string {
	cleaned := make([]string, 0, len(images))
	for _, image := range images {
		trimmed := strings.TrimSpace(image)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

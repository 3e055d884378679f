package showings

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/pkg/db"
	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
	"github.com/openhouselabs/openhouse-backend/pkg/enums"
	pkgerrors "github.com/openhouselabs/openhouse-backend/pkg/errors"
	"github.com/openhouselabs/openhouse-backend/pkg/pagination"
)

const (
	maxMessageLen  = 1000
	maxFeedbackLen = 2000

	noListingsMessage = "No listings found for this agent"
	noShowingsMessage = "No showings found"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-()+]+$`)
)

// Service defines the behavior needed by the showings controller.
type Service interface {
	Create(ctx context.Context, req CreateShowingRequest) (*PublicShowing, error)
	List(ctx context.Context, agentID uuid.UUID, params ListParams) (*ListResult, error)
	PendingCount(ctx context.Context, agentID uuid.UUID) (*PendingCountResult, error)
	Get(ctx context.Context, id uuid.UUID) (*PublicShowing, error)
	UpdateStatus(ctx context.Context, agentID uuid.UUID, id uuid.UUID, req UpdateStatusRequest) (*PublicShowing, error)
	UpdateFeedback(ctx context.Context, agentID uuid.UUID, id uuid.UUID, req FeedbackRequest) (*PublicShowing, error)
	Delete(ctx context.Context, agentID uuid.UUID, id uuid.UUID) (*DeleteResult, error)
}

type showingRepository interface {
	Create(ctx context.Context, showing *models.Showing) (*models.Showing, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Showing, error)
	Update(ctx context.Context, showing *models.Showing) (*models.Showing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByListingIDs(ctx context.Context, listingIDs []uuid.UUID, status *enums.ShowingStatus, page pagination.Params) ([]models.Showing, int64, error)
	CountPending(ctx context.Context, listingIDs []uuid.UUID) (int64, error)
}

type listingReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	OwnedIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error)
}

type service struct {
	showings showingRepository
	listings listingReader
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build a showings service.
type ServiceParams struct {
	ShowingRepo showingRepository
	ListingRepo listingReader
	Now         func() time.Time
}

// NewService constructs a showings service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ShowingRepo == nil {
		return nil, fmt.Errorf("showing repository is required")
	}
	if params.ListingRepo == nil {
		return nil, fmt.Errorf("listing repository is required")
	}
	if params.Now == nil {
		params.Now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		showings: params.ShowingRepo,
		listings: params.ListingRepo,
		now:      params.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateShowingRequest) (*PublicShowing, error) {
	listingID, err := uuid.Parse(req.ListingRef())
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidID, "Invalid listing ID format").
			WithReason("The provided ID is not a valid UUID")
	}

	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Listing not found").
				WithReason("No listing exists with the provided ID")
		}
		return nil, classify(err)
	}

	details := map[string]string{}

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		details["name"] = "is required"
	case len(name) < 2:
		details["name"] = "must be at least 2 characters"
	case len(name) > 100:
		details["name"] = "must be at most 100 characters"
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case email == "":
		details["email"] = "is required"
	case !emailPattern.MatchString(email):
		details["email"] = "must be a valid email"
	}

	phone := strings.TrimSpace(req.Phone)
	switch {
	case phone == "":
		details["phone"] = "is required"
	case !phonePattern.MatchString(phone):
		details["phone"] = "must be a valid phone number"
	}

	switch {
	case req.PreferredDate == nil:
		details["preferredDate"] = "is required"
	case !req.PreferredDate.After(s.now()):
		details["preferredDate"] = "must be a future date"
	}

	message := strings.TrimSpace(req.Message)
	if len(message) > maxMessageLen {
		details["message"] = fmt.Sprintf("must be at most %d characters", maxMessageLen)
	}

	if len(details) > 0 {
		return nil, validationError(details)
	}

	showing := &models.Showing{
		ListingID:     listingID,
		Name:          name,
		Email:         email,
		Phone:         phone,
		PreferredDate: req.PreferredDate.UTC(),
		Message:       message,
		Status:        enums.ShowingStatusPending,
	}

	created, err := s.showings.Create(ctx, showing)
	if err != nil {
		return nil, classify(err)
	}
	return s.populated(ctx, created.ID)
}

func (s *service) List(ctx context.Context, agentID uuid.UUID, params ListParams) (*ListResult, error) {
	var listingIDs []uuid.UUID
	if params.ListingID != nil {
		listing, err := s.listings.FindByID(ctx, *params.ListingID)
		if err != nil {
			if db.IsNotFound(err) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Listing not found").
					WithReason("No listing exists with the provided ID")
			}
			return nil, classify(err)
		}
		if !listing.IsOwnedBy(agentID) {
			return nil, accessDenied("You can only view showings for your own listings")
		}
		listingIDs = []uuid.UUID{listing.ID}
	} else {
		owned, err := s.listings.OwnedIDs(ctx, agentID)
		if err != nil {
			return nil, classify(err)
		}
		if len(owned) == 0 {
			return &ListResult{
				Showings:   []PublicShowing{},
				Count:      0,
				Page:       pagination.DefaultPage,
				TotalPages: 0,
				Message:    noListingsMessage,
			}, nil
		}
		listingIDs = owned
	}

	var status *enums.ShowingStatus
	if raw := strings.TrimSpace(params.Status); raw != "" {
		parsed, err := enums.ParseShowingStatus(raw)
		if err != nil {
			reason := fmt.Sprintf("status must be one of: %s", strings.Join(enums.ShowingStatusValues(), ", "))
			return nil, pkgerrors.New(pkgerrors.CodeInvalidQuery, "Invalid query parameters").
				WithReason(reason).
				WithDetails(map[string]string{"status": reason})
		}
		status = &parsed
	}

	page := params.Page
	if page.Page == 0 {
		page = pagination.Default()
	}

	rows, total, err := s.showings.ListByListingIDs(ctx, listingIDs, status, page)
	if err != nil {
		return nil, classify(err)
	}

	publics := make([]PublicShowing, 0, len(rows))
	for i := range rows {
		publics = append(publics, FromModel(&rows[i]))
	}

	meta := pagination.MetaFor(page, total)
	result := &ListResult{
		Showings:   publics,
		Count:      total,
		Page:       meta.CurrentPage,
		TotalPages: meta.TotalPages,
	}
	if total == 0 {
		result.Message = noShowingsMessage
	}
	return result, nil
}

func (s *service) PendingCount(ctx context.Context, agentID uuid.UUID) (*PendingCountResult, error) {
	owned, err := s.listings.OwnedIDs(ctx, agentID)
	if err != nil {
		return nil, classify(err)
	}
	if len(owned) == 0 {
		return &PendingCountResult{Count: 0}, nil
	}

	count, err := s.showings.CountPending(ctx, owned)
	if err != nil {
		return nil, classify(err)
	}
	return &PendingCountResult{Count: count}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PublicShowing, error) {
	return s.populated(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, agentID uuid.UUID, id uuid.UUID, req UpdateStatusRequest) (*PublicShowing, error) {
	showing, err := s.findOwned(ctx, agentID, id, "You can only update showings for your own listings")
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(req.Status)
	if raw == "" {
		return nil, validationError(map[string]string{"status": "is required"})
	}
	status, err := enums.NormalizeShowingStatus(raw)
	if err != nil {
		return nil, validationError(map[string]string{
			"status": fmt.Sprintf("must be one of: %s", strings.Join(enums.ShowingStatusValues(), ", ")),
		})
	}

	if status == enums.ShowingStatusConfirmed {
		if req.ScheduledDate == nil || !req.ScheduledDate.After(s.now()) {
			return nil, validationError(map[string]string{"scheduledDate": "must be a valid future date"})
		}
		scheduled := req.ScheduledDate.UTC()
		showing.ScheduledAt = &scheduled
	} else {
		showing.ScheduledAt = nil
	}
	showing.Status = status

	if _, err := s.showings.Update(ctx, showing); err != nil {
		return nil, classify(err)
	}
	return s.populated(ctx, showing.ID)
}

func (s *service) UpdateFeedback(ctx context.Context, agentID uuid.UUID, id uuid.UUID, req FeedbackRequest) (*PublicShowing, error) {
	showing, err := s.findOwned(ctx, agentID, id, "You can only add feedback to showings for your own listings")
	if err != nil {
		return nil, err
	}

	if req.Feedback == nil {
		return nil, validationError(map[string]string{"feedback": "is required"})
	}
	// An empty string is a deliberate clear, only absence is rejected.
	feedback := strings.TrimSpace(*req.Feedback)
	if len(feedback) > maxFeedbackLen {
		return nil, validationError(map[string]string{
			"feedback": fmt.Sprintf("must be at most %d characters", maxFeedbackLen),
		})
	}

	showing.Feedback = feedback
	if _, err := s.showings.Update(ctx, showing); err != nil {
		return nil, classify(err)
	}
	return s.populated(ctx, showing.ID)
}

func (s *service) Delete(ctx context.Context, agentID uuid.UUID, id uuid.UUID) (*DeleteResult, error) {
	showing, err := s.findOwned(ctx, agentID, id, "You can only delete showings for your own listings")
	if err != nil {
		return nil, err
	}

	if err := s.showings.Delete(ctx, id); err != nil {
		return nil, classify(err)
	}
	return &DeleteResult{
		ID:        showing.ID,
		ListingID: showing.ListingID,
		Name:      showing.Name,
		Email:     showing.Email,
	}, nil
}

// findOwned loads the showing and enforces that its listing belongs to the
// agent, surfacing the operation-specific denial message.
func (s *service) findOwned(ctx context.Context, agentID uuid.UUID, id uuid.UUID, forbiddenMessage string) (*models.Showing, error) {
	showing, err := s.showings.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, showingNotFound()
		}
		return nil, classify(err)
	}
	if showing.Listing == nil || !showing.Listing.IsOwnedBy(agentID) {
		return nil, accessDenied(forbiddenMessage)
	}
	return showing, nil
}

func (s *service) populated(ctx context.Context, id uuid.UUID) (*PublicShowing, error) {
	showing, err := s.showings.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, showingNotFound()
		}
		return nil, classify(err)
	}
	public := FromModel(showing)
	return &public, nil
}

// accessDenied puts the short tag in the payload's error field and the
// operation-specific explanation in message.
func accessDenied(message string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeForbidden, message).
		WithReason("Access denied")
}

func showingNotFound() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "Showing not found").
		WithReason("No showing exists with the provided ID")
}

func validationError(details map[string]string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").
		WithReason("One or more fields failed validation").
		WithDetails(details)
}

func classify(err error) error {
	if db.IsUnavailable(err) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
}

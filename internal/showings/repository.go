package showings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
	"github.com/openhouselabs/openhouse-backend/pkg/enums"
	"github.com/openhouselabs/openhouse-backend/pkg/pagination"
)

// Repository provides persistence for showing requests.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new showing row.
func (r *Repository) Create(ctx context.Context, showing *models.Showing) (*models.Showing, error) {
	if err := r.db.WithContext(ctx).Create(showing).Error; err != nil {
		return nil, err
	}
	return showing, nil
}

// FindByID loads a showing with its listing and the listing's owning agent.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Showing, error) {
	var showing models.Showing
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Creator").
		First(&showing, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &showing, nil
}

// Update persists the full showing row.
func (r *Repository) Update(ctx context.Context, showing *models.Showing) (*models.Showing, error) {
	if err := r.db.WithContext(ctx).Save(showing).Error; err != nil {
		return nil, err
	}
	return showing, nil
}

// Delete removes a showing by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Showing{}).Error
}

// ListByListingIDs returns one newest-first page of showings across the given
// listings, plus the total match count.
func (r *Repository) ListByListingIDs(ctx context.Context, listingIDs []uuid.UUID, status *enums.ShowingStatus, page pagination.Params) ([]models.Showing, int64, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Showing{}).
		Where("listing_id IN ?", listingIDs)
	if status != nil {
		qb = qb.Where("status = ?", *status)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Showing
	err := qb.
		Preload("Listing").
		Order("created_at DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountPending counts pending showings across the given listings.
func (r *Repository) CountPending(ctx context.Context, listingIDs []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Showing{}).
		Where("listing_id IN ?", listingIDs).
		Where("status = ?", enums.ShowingStatusPending).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

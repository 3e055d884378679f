package listings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
)

// Repository provides persistence for listings.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new listing row.
func (r *Repository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// FindByID loads a listing with its owning agent preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).
		Preload("Creator").
		First(&listing, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// Update persists the full listing row.
func (r *Repository) Update(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if err := r.db.WithContext(ctx).Save(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// Delete removes a listing by ID. Showings cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Listing{}).Error
}

// List returns one page of listings matching the filters plus the total
// match count.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Listing, int64, error) {
	qb := r.db.WithContext(ctx).Model(&models.Listing{})

	if filters.MinPrice != nil {
		qb = qb.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		qb = qb.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.MinSquareFeet != nil {
		qb = qb.Where("square_feet >= ?", *filters.MinSquareFeet)
	}
	if filters.MaxSquareFeet != nil {
		qb = qb.Where("square_feet <= ?", *filters.MaxSquareFeet)
	}
	if filters.ZipCode != "" {
		qb = qb.Where("zip_code = ?", filters.ZipCode)
	}
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column := filters.SortColumn
	if column == "" {
		column = "created_at"
	}
	direction := "ASC"
	if filters.SortDesc {
		direction = "DESC"
	}

	var rows []models.Listing
	err := qb.
		Order(column + " " + direction).
		Order("id DESC").
		Limit(filters.Page.Limit).
		Offset(filters.Page.Offset()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// OwnedIDs returns the ids of every listing created by the agent.
func (r *Repository) OwnedIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("created_by = ?", agentID).
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

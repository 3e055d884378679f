package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/openhouselabs/openhouse-backend/pkg/enums"
)

// Listing represents a property for sale or rent, owned by an Agent.
// CreatedBy is nullable: legacy/public listings carry no owner and can never
// be mutated through the authenticated surface.
type Listing struct {
	ID         uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Price      float64             `gorm:"not null"`
	Address    string              `gorm:"not null"`
	SquareFeet float64             `gorm:"column:square_feet;not null"`
	ZipCode    string              `gorm:"column:zip_code;not null;index"`
	Status     enums.ListingStatus `gorm:"type:text;not null;default:'active';index"`
	Images     pq.StringArray      `gorm:"type:text[];column:images"`
	CreatedBy  *uuid.UUID          `gorm:"column:created_by;type:uuid;index"`
	Creator    *Agent              `gorm:"foreignKey:CreatedBy"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (l *Listing) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// IsOwnedBy reports whether the listing belongs to the given agent. An
// unowned listing belongs to nobody.
func (l *Listing) IsOwnedBy(agentID uuid.UUID) bool {
	return l.CreatedBy != nil && *l.CreatedBy == agentID
}

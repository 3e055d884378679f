package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openhouselabs/openhouse-backend/pkg/enums"
)

// Showing is a tour request submitted by a prospective visitor against a
// listing. Ownership authority is derived transitively from the listing's
// CreatedBy. ScheduledAt is non-nil only while the status is confirmed.
type Showing struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ListingID     uuid.UUID           `gorm:"column:listing_id;type:uuid;not null;index:idx_showings_listing_created"`
	Listing       *Listing            `gorm:"foreignKey:ListingID"`
	Name          string              `gorm:"not null"`
	Email         string              `gorm:"not null"`
	Phone         string              `gorm:"not null"`
	PreferredDate time.Time           `gorm:"column:preferred_date;not null"`
	Message       string              `gorm:"not null;default:''"`
	Status        enums.ShowingStatus `gorm:"type:text;not null;default:'pending';index"`
	Feedback      string              `gorm:"not null;default:''"`
	ScheduledAt   *time.Time          `gorm:"column:scheduled_at"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime;index:idx_showings_listing_created,sort:desc"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *Showing) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

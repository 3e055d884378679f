package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Agent represents an authenticated real-estate agent. The password is only
// ever stored as an argon2id hash and is never serialized into responses.
type Agent struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"not null"`
	Email         string    `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash  string    `gorm:"column:password_hash;not null"`
	Phone         *string   `gorm:"column:phone"`
	LicenseNumber *string   `gorm:"column:license_number;uniqueIndex"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the id client-side so the model also works on
// databases without gen_random_uuid().
func (a *Agent) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

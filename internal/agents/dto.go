package agents

import (
	"time"

	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
)

// PublicAgent is the caller-facing projection of an agent account. The
// password hash never crosses this boundary.
type PublicAgent struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone,omitempty"`
	LicenseNumber *string   `json:"licenseNumber,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromModel projects the stored agent into its public shape.
func FromModel(agent *models.Agent) PublicAgent {
	return PublicAgent{
		ID:            agent.ID,
		Name:          agent.Name,
		Email:         agent.Email,
		Phone:         agent.Phone,
		LicenseNumber: agent.LicenseNumber,
		IsActive:      agent.IsActive,
		CreatedAt:     agent.CreatedAt,
	}
}

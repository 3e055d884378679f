package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/internal/agents"
	pkgAuth "github.com/openhouselabs/openhouse-backend/pkg/auth"
	"github.com/openhouselabs/openhouse-backend/pkg/config"
	"github.com/openhouselabs/openhouse-backend/pkg/db"
	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
	pkgerrors "github.com/openhouselabs/openhouse-backend/pkg/errors"
	"github.com/openhouselabs/openhouse-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "Invalid credentials"
	invalidCredentialsReason  = "The email or password you entered is incorrect"
	accountDisabledMessage    = "Account disabled"
	accountDisabledReason     = "This account has been deactivated"
)

var phoneDigitsPattern = regexp.MustCompile(`^\d{10}$`)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Me(ctx context.Context, agentID uuid.UUID) (*agents.PublicAgent, error)
}

type agentRepository interface {
	Create(ctx context.Context, agent *models.Agent) (*models.Agent, error)
	FindByEmail(ctx context.Context, email string) (*models.Agent, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Agent, error)
}

type service struct {
	agents agentRepository
	jwtCfg config.JWTConfig
	pwdCfg config.PasswordConfig
	now    func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	AgentRepo      agentRepository
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Now            func() time.Time
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.AgentRepo == nil {
		return nil, fmt.Errorf("agent repository is required")
	}
	if params.Now == nil {
		params.Now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		agents: params.AgentRepo,
		jwtCfg: params.JWTConfig,
		pwdCfg: params.PasswordConfig,
		now:    params.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	license := normalizeOptional(req.LicenseNumber)

	hash, err := security.HashPassword(req.Password, s.pwdCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
	}

	agent := &models.Agent{
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  hash,
		Phone:         phone,
		LicenseNumber: license,
		IsActive:      true,
	}

	created, err := s.agents.Create(ctx, agent)
	if err != nil {
		switch {
		case db.IsUniqueViolation(err, "license_number"):
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Agent already exists").
				WithReason("An agent with this license number is already registered").
				WithDetails(map[string]string{"licenseNumber": *license})
		case db.IsUniqueViolation(err, ""):
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Agent already exists").
				WithReason("An agent with this email is already registered").
				WithDetails(map[string]string{"email": email})
		case db.IsUnavailable(err):
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
	}

	return s.respond(created)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, invalidCredentials()
	}

	agent, err := s.agents.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		if db.IsUnavailable(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
	}

	valid, err := security.VerifyPassword(req.Password, agent.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
	}
	if !valid {
		return nil, invalidCredentials()
	}
	if !agent.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, accountDisabledMessage).
			WithReason(accountDisabledReason)
	}

	return s.respond(agent)
}

func (s *service) Me(ctx context.Context, agentID uuid.UUID) (*agents.PublicAgent, error) {
	agent, err := s.agents.FindByID(ctx, agentID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Agent not found").
				WithReason("No agent exists with the provided ID")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
	}
	public := agents.FromModel(agent)
	return &public, nil
}

func (s *service) respond(agent *models.Agent) (*AuthResponse, error) {
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), agent.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "")
	}
	return &AuthResponse{
		Token: token,
		Agent: agents.FromModel(agent),
	}, nil
}

func invalidCredentials() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage).
		WithReason(invalidCredentialsReason)
}

// normalizePhone strips common separators and requires 10 digits.
func normalizePhone(phone *string) (*string, error) {
	if phone == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*phone)
	if trimmed == "" {
		return nil, nil
	}

	var digits strings.Builder
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '+' || r == '.':
			// separator, skip
		default:
			return nil, invalidPhone()
		}
	}

	normalized := digits.String()
	if !phoneDigitsPattern.MatchString(normalized) {
		return nil, invalidPhone()
	}
	return &normalized, nil
}

func invalidPhone() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").
		WithReason("One or more fields failed validation").
		WithDetails(map[string]string{"phone": "must be a valid 10-digit phone number"})
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

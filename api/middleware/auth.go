package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/api/responses"
	pkgAuth "github.com/openhouselabs/openhouse-backend/pkg/auth"
	"github.com/openhouselabs/openhouse-backend/pkg/config"
	"github.com/openhouselabs/openhouse-backend/pkg/db"
	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
	pkgerrors "github.com/openhouselabs/openhouse-backend/pkg/errors"
	"github.com/openhouselabs/openhouse-backend/pkg/logger"
)

// AgentFinder loads the token's subject so a deleted or deactivated account
// is rejected even while its token is still within its lifetime.
type AgentFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Agent, error)
}

// Auth validates a bearer token, loads the agent, and seeds the request
// context. The password hash is cleared before the agent crosses into
// handler code.
func Auth(cfg config.JWTConfig, agents AgentFinder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "No token provided").
					WithReason("Authorization header with a bearer token is required"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "No token provided").
					WithReason("Authorization header with a bearer token is required"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				if pkgAuth.IsExpired(err) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Token expired").
						WithReason("Your session has expired. Please log in again."))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Invalid token").
					WithReason("The provided token could not be verified"))
				return
			}
			if claims.AgentID == uuid.Nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid token").
					WithReason("The provided token could not be verified"))
				return
			}

			agent, err := agents.FindByID(r.Context(), claims.AgentID)
			if err != nil {
				if db.IsNotFound(err) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Agent not found").
						WithReason("The account for this token no longer exists"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, ""))
				return
			}
			if !agent.IsActive {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "Account disabled").
					WithReason("This account has been deactivated"))
				return
			}

			agent.PasswordHash = ""
			ctx := WithAgent(r.Context(), agent)
			if logg != nil {
				ctx = logg.WithAgentID(ctx, agent.ID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

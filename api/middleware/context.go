package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
)

type contextKey string

const ctxAgent contextKey = "agent"

// AgentFromContext returns the authenticated agent attached by Auth, or nil.
func AgentFromContext(ctx context.Context) *models.Agent {
	if ctx == nil {
		return nil
	}
	if agent, ok := ctx.Value(ctxAgent).(*models.Agent); ok {
		return agent
	}
	return nil
}

// AgentIDFromContext returns the authenticated agent's id, or uuid.Nil.
func AgentIDFromContext(ctx context.Context) uuid.UUID {
	if agent := AgentFromContext(ctx); agent != nil {
		return agent.ID
	}
	return uuid.Nil
}

// WithAgent injects the agent into the context, used by Auth and by tests.
func WithAgent(ctx context.Context, agent *models.Agent) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAgent, agent)
}

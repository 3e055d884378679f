package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/openhouselabs/openhouse-backend/internal/agents"
	pkgAuth "github.com/openhouselabs/openhouse-backend/pkg/auth"
	"github.com/openhouselabs/openhouse-backend/pkg/config"
	"github.com/openhouselabs/openhouse-backend/pkg/db/dbtest"
	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
	"github.com/openhouselabs/openhouse-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "openhouse-api", ExpirationMinutes: 60}
}

func seedAgent(t *testing.T, conn *gorm.DB, active bool) *models.Agent {
	t.Helper()
	agent := &models.Agent{
		Name:         "Jordan Reed",
		Email:        "jordan@example.com",
		PasswordHash: "hash",
		IsActive:     active,
	}
	if err := conn.Create(agent).Error; err != nil {
		t.Fatalf("seeding agent: %v", err)
	}
	return agent
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body.Message
}

func TestAuthValidToken(t *testing.T) {
	conn := dbtest.Open(t)
	agent := seedAgent(t, conn, true)

	var captured *models.Agent
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = AgentFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Auth(jwtConfig(), agents.NewRepository(conn), testLogger())(inner)

	token, err := pkgAuth.MintAccessToken(jwtConfig(), time.Now().UTC(), agent.ID)
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured == nil || captured.ID != agent.ID {
		t.Fatalf("agent not attached to context: %+v", captured)
	}
	if captured.PasswordHash != "" {
		t.Fatal("password hash leaked into context")
	}
}

func TestAuthMissingHeader(t *testing.T) {
	conn := dbtest.Open(t)
	handler := Auth(jwtConfig(), agents.NewRepository(conn), testLogger())(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/auth/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "No token provided" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	conn := dbtest.Open(t)
	handler := Auth(jwtConfig(), agents.NewRepository(conn), testLogger())(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Invalid token" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	conn := dbtest.Open(t)
	agent := seedAgent(t, conn, true)
	handler := Auth(jwtConfig(), agents.NewRepository(conn), testLogger())(http.NotFoundHandler())

	token, err := pkgAuth.MintAccessToken(jwtConfig(), time.Now().UTC().Add(-2*time.Hour), agent.ID)
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Token expired" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthUnknownAgent(t *testing.T) {
	conn := dbtest.Open(t)
	handler := Auth(jwtConfig(), agents.NewRepository(conn), testLogger())(http.NotFoundHandler())

	token, err := pkgAuth.MintAccessToken(jwtConfig(), time.Now().UTC(), uuid.New())
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Agent not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthInactiveAgent(t *testing.T) {
	conn := dbtest.Open(t)
	agent := seedAgent(t, conn, false)
	handler := Auth(jwtConfig(), agents.NewRepository(conn), testLogger())(http.NotFoundHandler())

	token, err := pkgAuth.MintAccessToken(jwtConfig(), time.Now().UTC(), agent.ID)
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Account disabled" {
		t.Fatalf("unexpected message %q", msg)
	}
}

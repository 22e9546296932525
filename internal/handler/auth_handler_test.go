package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eserbisyo/brgy-docs-api/internal/models"
	"github.com/eserbisyo/brgy-docs-api/internal/service"
	"github.com/eserbisyo/brgy-docs-api/pkg/response"
)

type authRepoStub struct {
	user *models.User
}

func (r *authRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.user == nil || r.user.Email != email {
		return nil, sql.ErrNoRows
	}
	return r.user, nil
}

func (r *authRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return r.user, nil
}

func (r *authRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func (r *authRepoStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	return nil
}

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &authRepoStub{user: &models.User{
		ID:           "u1",
		Email:        "secretary@brgy.gov.ph",
		PasswordHash: string(hash),
		FullName:     "Maria Santos",
		Role:         models.RoleSecretary,
		Barangay:     "San Isidro",
		Active:       true,
	}}
	svc := service.NewAuthService(repo, nil, zap.NewNop(), service.AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "brgy-docs-api",
	})
	return NewAuthHandler(svc)
}

func TestAuthHandlerLogin(t *testing.T) {
	h := newAuthHandler(t)

	c, w := testContext(t, http.MethodPost, "/auth/login", `{"email":"secretary@brgy.gov.ph","password":"secret123"}`, nil)
	h.Login(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["access_token"])
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	h := newAuthHandler(t)

	c, w := testContext(t, http.MethodPost, "/auth/login", `{"email":"secretary@brgy.gov.ph","password":"nope"}`, nil)
	h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerLoginMalformedBody(t *testing.T) {
	h := newAuthHandler(t)

	c, w := testContext(t, http.MethodPost, "/auth/login", `{"email":`, nil)
	h.Login(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	h := newAuthHandler(t)

	c, w := testContext(t, http.MethodGet, "/auth/me", "", staffClaims())
	h.Me(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "San Isidro", data["barangay"])
}

func TestAuthHandlerMeUnauthenticated(t *testing.T) {
	h := newAuthHandler(t)

	c, w := testContext(t, http.MethodGet, "/auth/me", "", nil)
	h.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

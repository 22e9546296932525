package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eserbisyo/brgy-docs-api/internal/models"
	appErrors "github.com/eserbisyo/brgy-docs-api/pkg/errors"
)

type mockAuthRepo struct {
	userByEmail      *models.User
	findByEmailErr   error
	auditLogs        []*models.AuditLog
	lastLoginUpdated bool
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return m.userByEmail, nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func authTestConfig() AuthConfig {
	return AuthConfig{AccessTokenSecret: "secret", AccessTokenExpiry: time.Hour, Issuer: "brgy-docs-api"}
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{
		ID:           "u1",
		Email:        "secretary@brgy.gov.ph",
		PasswordHash: string(password),
		Active:       true,
		Role:         models.RoleSecretary,
		Barangay:     "San Isidro",
	}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), authTestConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "secretary@brgy.gov.ph", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "San Isidro", res.User.Barangay)
	assert.Equal(t, models.RoleSecretary, res.User.Role)
	assert.True(t, repo.lastLoginUpdated)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogin, repo.auditLogs[0].Action)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	repo := &mockAuthRepo{findByEmailErr: sql.ErrNoRows}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), authTestConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@brgy.gov.ph", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "u1", Email: "secretary@brgy.gov.ph", PasswordHash: string(password), Active: true}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), authTestConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "secretary@brgy.gov.ph", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactive(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "u1", Email: "secretary@brgy.gov.ph", PasswordHash: string(password), Active: false}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), authTestConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "secretary@brgy.gov.ph", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInvalidPayload(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), authTestConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: ""})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), authTestConfig())
	user := &models.User{ID: "u1", Email: "captain@brgy.gov.ph", Role: models.RoleCaptain, Barangay: "Poblacion"}

	token, _, err := svc.generateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleCaptain, claims.Role)
	assert.Equal(t, "Poblacion", claims.Barangay)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	repo := &mockAuthRepo{}
	issuer := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{AccessTokenSecret: "other", AccessTokenExpiry: time.Hour})
	verifier := NewAuthService(repo, validator.New(), zap.NewNop(), authTestConfig())

	token, _, err := issuer.generateAccessToken(&models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenExpired(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{AccessTokenSecret: "secret", AccessTokenExpiry: -time.Minute})

	token, _, err := svc.generateAccessToken(&models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

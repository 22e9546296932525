package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eserbisyo/brgy-docs-api/internal/models"
)

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "role", "barangay", "active", "last_login", "created_at", "updated_at"}).
		AddRow("u1", "secretary@brgy.gov.ph", "hash", "Ka Nena", "SECRETARY", "San Isidro", true, nil, now, now)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("secretary@brgy.gov.ph").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "secretary@brgy.gov.ph")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSecretary, user.Role)
	assert.Equal(t, "San Isidro", user.Barangay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmailAbsent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("nobody@brgy.gov.ph").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@brgy.gov.ph")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryListStaffEmails(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"email"}).
		AddRow("captain@brgy.gov.ph").
		AddRow("secretary@brgy.gov.ph")
	mock.ExpectQuery("SELECT email FROM users").
		WithArgs("San Isidro", "SECRETARY", "CAPTAIN").
		WillReturnRows(rows)

	emails, err := repo.ListStaffEmails(context.Background(), "San Isidro")
	require.NoError(t, err)
	assert.Equal(t, []string{"captain@brgy.gov.ph", "secretary@brgy.gov.ph"}, emails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateAuditLogDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(sqlmock.AnyArg(), nil, "STATUS_UPDATE", "barangay-clearance", sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), "system", "request-service", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	resourceID := "c1"
	log := &models.AuditLog{
		Action:     models.AuditActionStatusUpdate,
		Resource:   "barangay-clearance",
		ResourceID: &resourceID,
		IPAddress:  "system",
		UserAgent:  "request-service",
	}
	require.NoError(t, repo.CreateAuditLog(context.Background(), log))
	assert.NotEmpty(t, log.ID)
	assert.False(t, log.CreatedAt.IsZero())
}

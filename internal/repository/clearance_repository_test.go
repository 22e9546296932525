package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eserbisyo/brgy-docs-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var clearanceColumns = []string{
	"id", "barangay", "status", "is_verified", "date_of_issuance", "created_at", "updated_at",
	"name", "email", "contact_number", "address", "purpose",
}

func TestClearanceRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClearanceRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(clearanceColumns).
		AddRow("c1", "San Isidro", "pending", false, nil, now, now, "Juan", "juan@example.com", "0917", "Purok 1", "Employment")
	mock.ExpectQuery("SELECT (.+) FROM barangay_clearances").
		WithArgs("c1").
		WillReturnRows(rows)

	rec, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	doc := rec.(*models.BarangayClearance)
	assert.Equal(t, "c1", doc.ID)
	assert.Equal(t, "San Isidro", doc.Barangay)
	assert.Equal(t, models.StatusPending, doc.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearanceRepositoryFindByIDAbsent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClearanceRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM barangay_clearances").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestClearanceRepositoryFindByBarangay(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClearanceRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(clearanceColumns).
		AddRow("c1", "San Isidro", "pending", false, nil, now, now, "Juan", "", "0917", "Purok 1", "Employment").
		AddRow("c2", "San Isidro", "approved", true, now, now.Add(-time.Hour), now, "Maria", "", "0918", "Purok 2", "Travel")
	mock.ExpectQuery("SELECT (.+) FROM barangay_clearances WHERE barangay").
		WithArgs("San Isidro").
		WillReturnRows(rows)

	records, err := repo.FindByBarangay(context.Background(), "San Isidro")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c1", records[0].RecordID())
	assert.Equal(t, models.StatusApproved, records[1].CurrentStatus())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearanceRepositoryInsertAssignsIDAndTimestamps(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClearanceRepository(db)

	mock.ExpectExec("INSERT INTO barangay_clearances").
		WithArgs(sqlmock.AnyArg(), "San Isidro", "pending", false, sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Juan", "juan@example.com", "0917", "Purok 1", "Employment").
		WillReturnResult(sqlmock.NewResult(1, 1))

	doc := &models.BarangayClearance{Name: "Juan", Email: "juan@example.com", ContactNumber: "0917", Address: "Purok 1", Purpose: "Employment"}
	doc.BindScope("San Isidro")

	require.NoError(t, repo.Insert(context.Background(), doc))
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearanceRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClearanceRepository(db)

	doc := &models.BarangayClearance{}
	doc.ID = "c1"
	doc.ApplyStatus(models.StatusApproved, time.Now().UTC())

	mock.ExpectExec("UPDATE barangay_clearances").
		WithArgs("c1", "approved", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), doc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearanceRepositoryUpdateStatusAbsent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClearanceRepository(db)

	doc := &models.BarangayClearance{}
	doc.ID = "missing"
	doc.ApplyStatus(models.StatusRejected, time.Now().UTC())

	mock.ExpectExec("UPDATE barangay_clearances").
		WithArgs("missing", "rejected", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), doc)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestClearanceRepositoryRejectsForeignRecord(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClearanceRepository(db)

	err := repo.Insert(context.Background(), &models.Cedula{})
	require.Error(t, err)
	err = repo.UpdateStatus(context.Background(), &models.Cedula{})
	require.Error(t, err)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eserbisyo/brgy-docs-api/internal/models"
)

// ClearanceRepository persists barangay clearance requests.
type ClearanceRepository struct {
	db *sqlx.DB
}

// NewClearanceRepository constructs the repository.
func NewClearanceRepository(db *sqlx.DB) *ClearanceRepository {
	return &ClearanceRepository{db: db}
}

// FindByID loads a clearance request. Absence surfaces as sql.ErrNoRows.
func (r *ClearanceRepository) FindByID(ctx context.Context, id string) (models.DocumentRecord, error) {
	const query = `
SELECT id, barangay, status, is_verified, date_of_issuance, created_at, updated_at,
	name, email, contact_number, address, purpose
FROM barangay_clearances
WHERE id = $1`

	var doc models.BarangayClearance
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find clearance %s: %w", id, err)
	}
	return &doc, nil
}

// FindByBarangay lists clearance requests scoped to one barangay, newest first.
func (r *ClearanceRepository) FindByBarangay(ctx context.Context, barangay string) ([]models.DocumentRecord, error) {
	const query = `
SELECT id, barangay, status, is_verified, date_of_issuance, created_at, updated_at,
	name, email, contact_number, address, purpose
FROM barangay_clearances
WHERE barangay = $1
ORDER BY created_at DESC`

	var docs []models.BarangayClearance
	if err := r.db.SelectContext(ctx, &docs, query, barangay); err != nil {
		return nil, fmt.Errorf("list clearances for %s: %w", barangay, err)
	}

	records := make([]models.DocumentRecord, len(docs))
	for i := range docs {
		records[i] = &docs[i]
	}
	return records, nil
}

// Insert stores a new clearance request, assigning id and timestamps.
func (r *ClearanceRepository) Insert(ctx context.Context, rec models.DocumentRecord) error {
	doc, ok := rec.(*models.BarangayClearance)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}

	now := time.Now().UTC()
	doc.ID = uuid.NewString()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	const query = `
INSERT INTO barangay_clearances
	(id, barangay, status, is_verified, created_at, updated_at, name, email, contact_number, address, purpose)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	if _, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Barangay, doc.Status, doc.IsVerified, doc.CreatedAt, doc.UpdatedAt,
		doc.Name, doc.Email, doc.ContactNumber, doc.Address, doc.Purpose,
	); err != nil {
		return fmt.Errorf("insert clearance: %w", err)
	}
	return nil
}

// UpdateStatus writes the lifecycle fields of an existing clearance request.
func (r *ClearanceRepository) UpdateStatus(ctx context.Context, rec models.DocumentRecord) error {
	doc, ok := rec.(*models.BarangayClearance)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}

	const query = `
UPDATE barangay_clearances
SET status = $2, is_verified = $3, date_of_issuance = $4, updated_at = $5
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Status, doc.IsVerified, doc.DateOfIssuance, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update clearance %s: %w", doc.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

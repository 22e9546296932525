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

// IndigencyRepository persists certificate of indigency requests.
type IndigencyRepository struct {
	db *sqlx.DB
}

// NewIndigencyRepository constructs the repository.
func NewIndigencyRepository(db *sqlx.DB) *IndigencyRepository {
	return &IndigencyRepository{db: db}
}

func (r *IndigencyRepository) FindByID(ctx context.Context, id string) (models.DocumentRecord, error) {
	const query = `
SELECT id, barangay, status, is_verified, date_of_issuance, created_at, updated_at,
	name, contact_number, address, purpose
FROM barangay_indigencies
WHERE id = $1`

	var doc models.BarangayIndigency
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find indigency %s: %w", id, err)
	}
	return &doc, nil
}

func (r *IndigencyRepository) FindByBarangay(ctx context.Context, barangay string) ([]models.DocumentRecord, error) {
	const query = `
SELECT id, barangay, status, is_verified, date_of_issuance, created_at, updated_at,
	name, contact_number, address, purpose
FROM barangay_indigencies
WHERE barangay = $1
ORDER BY created_at DESC`

	var docs []models.BarangayIndigency
	if err := r.db.SelectContext(ctx, &docs, query, barangay); err != nil {
		return nil, fmt.Errorf("list indigencies for %s: %w", barangay, err)
	}

	records := make([]models.DocumentRecord, len(docs))
	for i := range docs {
		records[i] = &docs[i]
	}
	return records, nil
}

func (r *IndigencyRepository) Insert(ctx context.Context, rec models.DocumentRecord) error {
	doc, ok := rec.(*models.BarangayIndigency)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}

	now := time.Now().UTC()
	doc.ID = uuid.NewString()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	const query = `
INSERT INTO barangay_indigencies
	(id, barangay, status, is_verified, created_at, updated_at, name, contact_number, address, purpose)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if _, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Barangay, doc.Status, doc.IsVerified, doc.CreatedAt, doc.UpdatedAt,
		doc.Name, doc.ContactNumber, doc.Address, doc.Purpose,
	); err != nil {
		return fmt.Errorf("insert indigency: %w", err)
	}
	return nil
}

func (r *IndigencyRepository) UpdateStatus(ctx context.Context, rec models.DocumentRecord) error {
	doc, ok := rec.(*models.BarangayIndigency)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}

	const query = `
UPDATE barangay_indigencies
SET status = $2, is_verified = $3, date_of_issuance = $4, updated_at = $5
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Status, doc.IsVerified, doc.DateOfIssuance, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update indigency %s: %w", doc.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

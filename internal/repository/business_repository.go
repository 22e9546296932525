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

// BusinessRepository persists business clearance requests.
type BusinessRepository struct {
	db *sqlx.DB
}

// NewBusinessRepository constructs the repository.
func NewBusinessRepository(db *sqlx.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) FindByID(ctx context.Context, id string) (models.DocumentRecord, error) {
	const query = `
SELECT id, barangay, status, is_verified, date_of_issuance, created_at, updated_at,
	owner_name, business_name, business_type, business_nature, owner_address, contact_number, email
FROM business_clearances
WHERE id = $1`

	var doc models.BusinessClearance
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find business clearance %s: %w", id, err)
	}
	return &doc, nil
}

func (r *BusinessRepository) FindByBarangay(ctx context.Context, barangay string) ([]models.DocumentRecord, error) {
	const query = `
SELECT id, barangay, status, is_verified, date_of_issuance, created_at, updated_at,
	owner_name, business_name, business_type, business_nature, owner_address, contact_number, email
FROM business_clearances
WHERE barangay = $1
ORDER BY created_at DESC`

	var docs []models.BusinessClearance
	if err := r.db.SelectContext(ctx, &docs, query, barangay); err != nil {
		return nil, fmt.Errorf("list business clearances for %s: %w", barangay, err)
	}

	records := make([]models.DocumentRecord, len(docs))
	for i := range docs {
		records[i] = &docs[i]
	}
	return records, nil
}

func (r *BusinessRepository) Insert(ctx context.Context, rec models.DocumentRecord) error {
	doc, ok := rec.(*models.BusinessClearance)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}

	now := time.Now().UTC()
	doc.ID = uuid.NewString()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	const query = `
INSERT INTO business_clearances
	(id, barangay, status, is_verified, created_at, updated_at,
	owner_name, business_name, business_type, business_nature, owner_address, contact_number, email)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	if _, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Barangay, doc.Status, doc.IsVerified, doc.CreatedAt, doc.UpdatedAt,
		doc.OwnerName, doc.BusinessName, doc.BusinessType, doc.BusinessNature,
		doc.OwnerAddress, doc.ContactNumber, doc.Email,
	); err != nil {
		return fmt.Errorf("insert business clearance: %w", err)
	}
	return nil
}

func (r *BusinessRepository) UpdateStatus(ctx context.Context, rec models.DocumentRecord) error {
	doc, ok := rec.(*models.BusinessClearance)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}

	const query = `
UPDATE business_clearances
SET status = $2, is_verified = $3, date_of_issuance = $4, updated_at = $5
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Status, doc.IsVerified, doc.DateOfIssuance, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business clearance %s: %w", doc.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

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

// CedulaRepository persists community tax certificate requests.
type CedulaRepository struct {
	db *sqlx.DB
}

// NewCedulaRepository constructs the repository.
func NewCedulaRepository(db *sqlx.DB) *CedulaRepository {
	return &CedulaRepository{db: db}
}

func (r *CedulaRepository) FindByID(ctx context.Context, id string) (models.DocumentRecord, error) {
	const query = `
SELECT id, barangay, status, is_verified, date_of_issuance, created_at, updated_at,
	name, address, date_of_birth, place_of_birth, civil_status, occupation, tax
FROM cedulas
WHERE id = $1`

	var doc models.Cedula
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find cedula %s: %w", id, err)
	}
	return &doc, nil
}

func (r *CedulaRepository) FindByBarangay(ctx context.Context, barangay string) ([]models.DocumentRecord, error) {
	const query = `
SELECT id, barangay, status, is_verified, date_of_issuance, created_at, updated_at,
	name, address, date_of_birth, place_of_birth, civil_status, occupation, tax
FROM cedulas
WHERE barangay = $1
ORDER BY created_at DESC`

	var docs []models.Cedula
	if err := r.db.SelectContext(ctx, &docs, query, barangay); err != nil {
		return nil, fmt.Errorf("list cedulas for %s: %w", barangay, err)
	}

	records := make([]models.DocumentRecord, len(docs))
	for i := range docs {
		records[i] = &docs[i]
	}
	return records, nil
}

func (r *CedulaRepository) Insert(ctx context.Context, rec models.DocumentRecord) error {
	doc, ok := rec.(*models.Cedula)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}

	now := time.Now().UTC()
	doc.ID = uuid.NewString()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	const query = `
INSERT INTO cedulas
	(id, barangay, status, is_verified, created_at, updated_at,
	name, address, date_of_birth, place_of_birth, civil_status, occupation, tax)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	if _, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Barangay, doc.Status, doc.IsVerified, doc.CreatedAt, doc.UpdatedAt,
		doc.Name, doc.Address, doc.DateOfBirth, doc.PlaceOfBirth,
		doc.CivilStatus, doc.Occupation, doc.Tax,
	); err != nil {
		return fmt.Errorf("insert cedula: %w", err)
	}
	return nil
}

func (r *CedulaRepository) UpdateStatus(ctx context.Context, rec models.DocumentRecord) error {
	doc, ok := rec.(*models.Cedula)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}

	const query = `
UPDATE cedulas
SET status = $2, is_verified = $3, date_of_issuance = $4, updated_at = $5
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Status, doc.IsVerified, doc.DateOfIssuance, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cedula %s: %w", doc.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

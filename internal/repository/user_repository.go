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

// UserRepository provides database access for accounts and the audit trail.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, full_name, role, barangay, active, last_login, created_at, updated_at FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, full_name, role, barangay, active, last_login, created_at, updated_at FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// UpdateLastLogin updates the last_login timestamp for a user.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE users SET last_login = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts, ts); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// ListStaffEmails returns the email addresses of active secretaries and
// captains for the given barangay. This is the staff distribution list for
// new-request notifications.
func (r *UserRepository) ListStaffEmails(ctx context.Context, barangay string) ([]string, error) {
	const query = `
SELECT email FROM users
WHERE barangay = $1 AND active = TRUE AND role IN ($2, $3)
ORDER BY email ASC`

	var emails []string
	if err := r.db.SelectContext(ctx, &emails, query, barangay, models.RoleSecretary, models.RoleCaptain); err != nil {
		return nil, fmt.Errorf("list staff emails for %s: %w", barangay, err)
	}
	return emails, nil
}

// CreateAuditLog inserts an audit trail record.
func (r *UserRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	const query = `
INSERT INTO audit_logs (id, user_id, action, resource, resource_id, old_values, new_values, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if _, err := r.db.ExecContext(ctx, query,
		log.ID, log.UserID, log.Action, log.Resource, log.ResourceID,
		log.OldValues, log.NewValues, log.IPAddress, log.UserAgent, log.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

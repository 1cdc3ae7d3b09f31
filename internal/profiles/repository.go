package profiles

import (
	"context"
	"database/sql"

	"github.com/siptrack/siptrack/backend/go-services/internal/database"
	"github.com/siptrack/siptrack/backend/go-services/internal/models"
)

// Repository defines persistence operations for profiles
type Repository interface {
	// GetByID returns the profile with the given id, or apperrors.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	// Create persists a new profile. A uniqueness conflict on id or username
	// is returned as apperrors.ErrDuplicateKey.
	Create(ctx context.Context, p *models.Profile) error
}

// PostgresRepository implements Repository on the profiles table
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT id, username, COALESCE(email, ''), COALESCE(password_hash, ''), active, created_at
	          FROM profiles WHERE id = $1`

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) error {
	query := `INSERT INTO profiles (id, username, email, password_hash, active, created_at)
	          VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Username, p.Email, p.PasswordHash, p.Active, p.CreatedAt)
	return database.TranslateError(err)
}

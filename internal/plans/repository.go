package plans

import (
	"context"
	"database/sql"
	"time"

	"github.com/siptrack/siptrack/backend/go-services/internal/database"
	"github.com/siptrack/siptrack/backend/go-services/internal/models"
)

// Repository defines persistence operations for SIP plans
type Repository interface {
	// Create persists the plan and fills in its generated ID.
	Create(ctx context.Context, p *models.Plan) error
	// ListByOwner returns all plans owned by the given profile, in no
	// particular order.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Plan, error)
}

// PostgresRepository implements Repository on the plans table
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Plan) error {
	query := `INSERT INTO plans (scheme_name, monthly_amount, start_date, owner_id, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		p.SchemeName, p.MonthlyAmount, p.StartDate.Time, p.OwnerID, p.CreatedAt).Scan(&p.ID)
	return database.TranslateError(err)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Plan, error) {
	query := `SELECT id, scheme_name, monthly_amount, start_date, owner_id, created_at
	          FROM plans WHERE owner_id = $1`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, database.TranslateError(err)
	}
	defer rows.Close()

	var out []models.Plan
	for rows.Next() {
		var p models.Plan
		var start time.Time
		if err := rows.Scan(&p.ID, &p.SchemeName, &p.MonthlyAmount, &start, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, database.TranslateError(err)
		}
		p.StartDate = models.DateOf(start)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, database.TranslateError(err)
	}
	return out, nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingueefy/coach-payout-service/internal/apperrors"
	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	portsrepo "github.com/lingueefy/coach-payout-service/internal/core/ports/repositories"
	"github.com/lingueefy/coach-payout-service/internal/models"
	"github.com/lingueefy/coach-payout-service/internal/utils/mapping"
)

const coachColumns = `coach_id, name, email, stripe_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCoachRepository struct {
	pool *pgxpool.Pool
}

// newPgxCoachRepository creates a new repository for coach directory data.
func newPgxCoachRepository(pool *pgxpool.Pool) portsrepo.CoachRepositoryFacade {
	return &PgxCoachRepository{pool: pool}
}

// Ensure PgxCoachRepository implements portsrepo.CoachRepositoryFacade
var _ portsrepo.CoachRepositoryFacade = (*PgxCoachRepository)(nil)

func scanCoach(row rowScanner) (models.Coach, error) {
	var m models.Coach
	err := row.Scan(
		&m.CoachID,
		&m.Name,
		&m.Email,
		&m.StripeAccountID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindCoachByID retrieves a coach by their unique identifier.
func (r *PgxCoachRepository) FindCoachByID(ctx context.Context, coachID string) (*domain.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE coach_id = $1;`

	m, err := scanCoach(r.pool.QueryRow(ctx, query, coachID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("coach %s: %w", coachID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query coach %s: %w", coachID, err)
	}

	coach := mapping.ToDomainCoach(m)
	return &coach, nil
}

// ListActiveCoaches retrieves all active coaches ordered by name.
func (r *PgxCoachRepository) ListActiveCoaches(ctx context.Context) ([]domain.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE is_active = TRUE ORDER BY name ASC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active coaches: %w", err)
	}
	defer rows.Close()

	var coaches []domain.Coach
	for rows.Next() {
		m, err := scanCoach(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coach: %w", err)
		}
		coaches = append(coaches, mapping.ToDomainCoach(m))
	}
	return coaches, rows.Err()
}

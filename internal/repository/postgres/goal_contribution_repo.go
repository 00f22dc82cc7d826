package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
)

// GoalContributionRepository implements domain.GoalContributionRepository
// using PostgreSQL
type GoalContributionRepository struct {
	pool *pgxpool.Pool
}

// NewGoalContributionRepository creates a new GoalContributionRepository
func NewGoalContributionRepository(pool *pgxpool.Pool) *GoalContributionRepository {
	return &GoalContributionRepository{pool: pool}
}

const contributionColumns = `id, goal_id, movement_id, amount, created_at`

func scanContribution(row pgx.Row) (*domain.GoalContribution, error) {
	var (
		contribution domain.GoalContribution
		id           pgtype.UUID
		goalID       pgtype.UUID
		movementID   pgtype.UUID
		amount       pgtype.Numeric
		createdAt    pgtype.Timestamptz
	)
	if err := row.Scan(&id, &goalID, &movementID, &amount, &createdAt); err != nil {
		return nil, err
	}
	contribution.ID = uuid.UUID(id.Bytes)
	contribution.GoalID = uuid.UUID(goalID.Bytes)
	contribution.MovementID = pgToUUIDPtr(movementID)
	contribution.Amount = pgNumericToDecimal(amount)
	contribution.CreatedAt = createdAt.Time
	return &contribution, nil
}

// Create creates a new contribution
func (r *GoalContributionRepository) Create(ctx context.Context, contribution *domain.GoalContribution) (*domain.GoalContribution, error) {
	amount, err := decimalToPgNumeric(contribution.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO goal_contributions (id, goal_id, movement_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+contributionColumns,
		uuidToPg(uuid.New()), uuidToPg(contribution.GoalID),
		uuidPtrToPg(contribution.MovementID), amount, time.Now().UTC())
	return scanContribution(row)
}

// ListByGoal retrieves contributions for a goal, newest first
func (r *GoalContributionRepository) ListByGoal(ctx context.Context, goalID uuid.UUID) ([]*domain.GoalContribution, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contributionColumns+` FROM goal_contributions WHERE goal_id = $1 ORDER BY created_at DESC`,
		uuidToPg(goalID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContributions(rows)
}

// ListByUser retrieves contributions across all the user's goals with
// created_at in [start, end]
func (r *GoalContributionRepository) ListByUser(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.GoalContribution, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.goal_id, c.movement_id, c.amount, c.created_at
		FROM goal_contributions c
		JOIN goals g ON g.id = c.goal_id
		WHERE g.user_id = $1 AND c.created_at >= $2 AND c.created_at <= $3
		ORDER BY c.created_at ASC`,
		uuidToPg(userID),
		pgtype.Timestamptz{Time: start, Valid: true},
		pgtype.Timestamptz{Time: end, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContributions(rows)
}

func collectContributions(rows pgx.Rows) ([]*domain.GoalContribution, error) {
	contributions := []*domain.GoalContribution{}
	for rows.Next() {
		contribution, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, contribution)
	}
	return contributions, rows.Err()
}

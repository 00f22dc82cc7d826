package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
)

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, user_id, title, category, target_amount, current_amount, target_date, status, created_at, completed_at, updated_at`

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		goal          domain.Goal
		id            pgtype.UUID
		userID        pgtype.UUID
		category      pgtype.Text
		targetAmount  pgtype.Numeric
		currentAmount pgtype.Numeric
		targetDate    pgtype.Date
		status        string
		createdAt     pgtype.Timestamptz
		completedAt   pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)
	if err := row.Scan(&id, &userID, &goal.Title, &category, &targetAmount, &currentAmount,
		&targetDate, &status, &createdAt, &completedAt, &updatedAt); err != nil {
		return nil, err
	}
	goal.ID = uuid.UUID(id.Bytes)
	goal.UserID = uuid.UUID(userID.Bytes)
	goal.Category = pgTextToStringPtr(category)
	goal.TargetAmount = pgNumericToDecimal(targetAmount)
	goal.CurrentAmount = pgNumericToDecimal(currentAmount)
	if targetDate.Valid {
		goal.TargetDate = &targetDate.Time
	}
	goal.Status = domain.GoalStatus(status)
	goal.CreatedAt = createdAt.Time
	if completedAt.Valid {
		goal.CompletedAt = &completedAt.Time
	}
	goal.UpdatedAt = updatedAt.Time
	return &goal, nil
}

// Create creates a new goal
func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	targetAmount, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	currentAmount, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	var targetDate pgtype.Date
	if goal.TargetDate != nil {
		targetDate = pgtype.Date{Time: *goal.TargetDate, Valid: true}
	}

	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO goals (id, user_id, title, category, target_amount, current_amount, target_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING `+goalColumns,
		uuidToPg(uuid.New()), uuidToPg(goal.UserID), goal.Title, stringPtrToPgText(goal.Category),
		targetAmount, currentAmount, targetDate, string(goal.Status), now)
	return scanGoal(row)
}

// GetByID retrieves a goal by ID, scoped to the user
func (r *GoalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Goal, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = $1 AND user_id = $2`,
		uuidToPg(id), uuidToPg(userID))
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// List retrieves goals with optional filters, ordered by created_at then id
// so downstream tie-breaks are reproducible
func (r *GoalRepository) List(ctx context.Context, userID uuid.UUID, filters *domain.GoalFilters) ([]*domain.Goal, error) {
	where := `WHERE user_id = $1`
	args := []any{uuidToPg(userID)}

	if filters != nil {
		if filters.Status != nil {
			args = append(args, string(*filters.Status))
			where += fmt.Sprintf(` AND status = $%d`, len(args))
		}
		if filters.Category != nil {
			args = append(args, *filters.Category)
			where += fmt.Sprintf(` AND category = $%d`, len(args))
		}
		if filters.Year != nil {
			args = append(args, *filters.Year)
			where += fmt.Sprintf(` AND EXTRACT(YEAR FROM created_at) = $%d`, len(args))
		}
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+goalColumns+` FROM goals `+where+` ORDER BY created_at ASC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []*domain.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update updates a goal
func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	targetAmount, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	currentAmount, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	var targetDate pgtype.Date
	if goal.TargetDate != nil {
		targetDate = pgtype.Date{Time: *goal.TargetDate, Valid: true}
	}
	var completedAt pgtype.Timestamptz
	if goal.CompletedAt != nil {
		completedAt = pgtype.Timestamptz{Time: *goal.CompletedAt, Valid: true}
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE goals
		SET title = $3, category = $4, target_amount = $5, current_amount = $6,
		    target_date = $7, status = $8, completed_at = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2
		RETURNING `+goalColumns,
		uuidToPg(goal.ID), uuidToPg(goal.UserID), goal.Title, stringPtrToPgText(goal.Category),
		targetAmount, currentAmount, targetDate, string(goal.Status), completedAt, time.Now().UTC())
	updated, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete deletes a goal and its contributions
func (r *GoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM goals WHERE id = $1 AND user_id = $2`,
		uuidToPg(id), uuidToPg(userID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

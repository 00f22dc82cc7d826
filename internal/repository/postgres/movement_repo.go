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

// MovementRepository implements domain.MovementRepository using PostgreSQL
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

const movementColumns = `id, user_id, kind, amount, category_id, occurred_on, description, created_at, updated_at`

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var (
		movement   domain.Movement
		id         pgtype.UUID
		userID     pgtype.UUID
		kind       string
		amount     pgtype.Numeric
		categoryID pgtype.UUID
		occurredOn pgtype.Date
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	if err := row.Scan(&id, &userID, &kind, &amount,
		&categoryID, &occurredOn, &movement.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	movement.ID = uuid.UUID(id.Bytes)
	movement.UserID = uuid.UUID(userID.Bytes)
	movement.Kind = domain.MovementKind(kind)
	movement.Amount = pgNumericToDecimal(amount)
	movement.CategoryID = pgToUUIDPtr(categoryID)
	movement.OccurredOn = occurredOn.Time
	movement.CreatedAt = createdAt.Time
	movement.UpdatedAt = updatedAt.Time
	return &movement, nil
}

// Create creates a new movement
func (r *MovementRepository) Create(ctx context.Context, movement *domain.Movement) (*domain.Movement, error) {
	amount, err := decimalToPgNumeric(movement.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO movements (id, user_id, kind, amount, category_id, occurred_on, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING `+movementColumns,
		uuidToPg(uuid.New()), uuidToPg(movement.UserID), string(movement.Kind), amount,
		uuidPtrToPg(movement.CategoryID), pgtype.Date{Time: movement.OccurredOn, Valid: true},
		movement.Description, now)
	return scanMovement(row)
}

// GetByID retrieves a movement by ID, scoped to the user
func (r *MovementRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Movement, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE id = $1 AND user_id = $2`,
		uuidToPg(id), uuidToPg(userID))
	movement, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}
		return nil, err
	}
	return movement, nil
}

// List retrieves movements with optional filters, newest first, paginated
func (r *MovementRepository) List(ctx context.Context, userID uuid.UUID, filters *domain.MovementFilters) (*domain.PaginatedMovements, error) {
	where := `WHERE user_id = $1`
	args := []any{uuidToPg(userID)}

	if filters != nil {
		if filters.Kind != nil {
			args = append(args, string(*filters.Kind))
			where += fmt.Sprintf(` AND kind = $%d`, len(args))
		}
		if filters.CategoryID != nil {
			args = append(args, uuidToPg(*filters.CategoryID))
			where += fmt.Sprintf(` AND category_id = $%d`, len(args))
		}
		if filters.StartDate != nil {
			args = append(args, pgtype.Date{Time: *filters.StartDate, Valid: true})
			where += fmt.Sprintf(` AND occurred_on >= $%d`, len(args))
		}
		if filters.EndDate != nil {
			args = append(args, pgtype.Date{Time: *filters.EndDate, Valid: true})
			where += fmt.Sprintf(` AND occurred_on <= $%d`, len(args))
		}
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movements `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
		}
		if pageSize > domain.MaxPageSize {
			pageSize = domain.MaxPageSize
		}
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM movements %s ORDER BY occurred_on DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		movementColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := []*domain.Movement{}
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int32((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedMovements{
		Data:       movements,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// ListByDateRange retrieves all movements with occurred_on in [start, end],
// ordered by occurred_on then created_at ascending
func (r *MovementRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+` FROM movements
		WHERE user_id = $1 AND occurred_on >= $2 AND occurred_on <= $3
		ORDER BY occurred_on ASC, created_at ASC`,
		uuidToPg(userID),
		pgtype.Date{Time: start, Valid: true},
		pgtype.Date{Time: end, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := []*domain.Movement{}
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}

// Update updates a movement
func (r *MovementRepository) Update(ctx context.Context, movement *domain.Movement) (*domain.Movement, error) {
	amount, err := decimalToPgNumeric(movement.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE movements
		SET kind = $3, amount = $4, category_id = $5, occurred_on = $6, description = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
		RETURNING `+movementColumns,
		uuidToPg(movement.ID), uuidToPg(movement.UserID), string(movement.Kind), amount,
		uuidPtrToPg(movement.CategoryID), pgtype.Date{Time: movement.OccurredOn, Valid: true},
		movement.Description, time.Now().UTC())
	updated, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete deletes a movement
func (r *MovementRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM movements WHERE id = $1 AND user_id = $2`,
		uuidToPg(id), uuidToPg(userID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}

// CountByCategory counts movements referencing a category
func (r *MovementRepository) CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM movements WHERE user_id = $1 AND category_id = $2`,
		uuidToPg(userID), uuidToPg(categoryID)).Scan(&count)
	return count, err
}

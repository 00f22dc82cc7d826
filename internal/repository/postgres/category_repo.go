package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, name, kind, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		category  domain.Category
		id        pgtype.UUID
		userID    pgtype.UUID
		kind      string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &userID, &category.Name, &kind, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	category.ID = uuid.UUID(id.Bytes)
	category.UserID = uuid.UUID(userID.Bytes)
	category.Kind = domain.MovementKind(kind)
	category.CreatedAt = createdAt.Time
	category.UpdatedAt = updatedAt.Time
	return &category, nil
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, user_id, name, kind, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING `+categoryColumns,
		uuidToPg(uuid.New()), uuidToPg(category.UserID), category.Name, string(category.Kind), now)
	return scanCategory(row)
}

// GetByID retrieves a category by ID, scoped to the user
func (r *CategoryRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND user_id = $2`,
		uuidToPg(id), uuidToPg(userID))
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// List retrieves all categories for a user, ordered by name
func (r *CategoryRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 ORDER BY name ASC`,
		uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update updates a category
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE categories SET name = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
		RETURNING `+categoryColumns,
		uuidToPg(category.ID), uuidToPg(category.UserID), category.Name, time.Now().UTC())
	updated, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete deletes a category
func (r *CategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		uuidToPg(id), uuidToPg(userID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

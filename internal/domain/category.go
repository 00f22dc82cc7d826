package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UncategorizedLabel is the display label for movements without a category.
const UncategorizedLabel = "Uncategorized"

// Category groups movements of a single kind. Movements of a category must
// share the category's kind; categories are never shared across kinds.
type Category struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	Name      string       `json:"name"`
	Kind      MovementKind `json:"kind"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Validate checks the category invariants.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if len(c.Name) > MaxCategoryNameLength {
		return ErrNameTooLong
	}
	if !c.Kind.IsValid() {
		return ErrInvalidMovementKind
	}
	return nil
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	Update(ctx context.Context, category *Category) (*Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

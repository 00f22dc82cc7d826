package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementKind classifies how a money movement affects net worth.
// Income is additive, Expense subtracts, Savings and Investment are treated
// as additive (money moved into those accounts is still part of net worth).
type MovementKind string

const (
	MovementKindIncome     MovementKind = "income"
	MovementKindExpense    MovementKind = "expense"
	MovementKindSavings    MovementKind = "savings"
	MovementKindInvestment MovementKind = "investment"
)

// IsValid reports whether the kind is one of the four known kinds.
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementKindIncome, MovementKindExpense, MovementKindSavings, MovementKindInvestment:
		return true
	}
	return false
}

// Movement is a single dated, typed money amount. Amount is always
// non-negative; the effect on net worth comes from Kind, not from a sign.
type Movement struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Kind        MovementKind    `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	OccurredOn  time.Time       `json:"occurredOn"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Validate checks the movement invariants.
func (m *Movement) Validate() error {
	if !m.Kind.IsValid() {
		return ErrInvalidMovementKind
	}
	if m.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if m.OccurredOn.IsZero() {
		return ErrDateRequired
	}
	if len(m.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// MovementFilters narrows movement listings
type MovementFilters struct {
	Kind       *MovementKind
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int32
	PageSize   int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginatedMovements struct {
	Data       []*Movement `json:"data"`
	Page       int32       `json:"page"`
	PageSize   int32       `json:"pageSize"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int32       `json:"totalPages"`
}

type MovementRepository interface {
	Create(ctx context.Context, movement *Movement) (*Movement, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Movement, error)
	List(ctx context.Context, userID uuid.UUID, filters *MovementFilters) (*PaginatedMovements, error)
	// ListByDateRange returns all movements with OccurredOn in [start, end],
	// ordered by OccurredOn then CreatedAt ascending. The ordering is what
	// makes first-encountered tie-breaks in the analytics layer reproducible.
	ListByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*Movement, error)
	Update(ctx context.Context, movement *Movement) (*Movement, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)
}

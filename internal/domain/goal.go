package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalStatus is the lifecycle state of a savings goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
)

// IsValid reports whether the status is a known lifecycle state.
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusActive, GoalStatusPaused, GoalStatusCompleted:
		return true
	}
	return false
}

// Goal is a savings target with current progress, an optional deadline and a
// lifecycle status. CurrentAmount may exceed TargetAmount (over-funding is
// legal). Invariant: CompletedAt is non-nil iff Status == GoalStatusCompleted.
type Goal struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	Title         string          `json:"title"`
	Category      *string         `json:"category,omitempty"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	Status        GoalStatus      `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Validate checks the goal invariants.
func (g *Goal) Validate() error {
	if g.Title == "" {
		return ErrTitleRequired
	}
	if len(g.Title) > MaxGoalTitleLength {
		return ErrTitleTooLong
	}
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTargetAmount
	}
	if g.CurrentAmount.IsNegative() {
		return ErrNegativeAmount
	}
	if !g.Status.IsValid() {
		return ErrInvalidGoalStatus
	}
	if (g.Status == GoalStatusCompleted) != (g.CompletedAt != nil) {
		return ErrCompletedAtMismatch
	}
	return nil
}

// GoalContribution records money put toward a goal. It may or may not trace
// back to a money movement.
type GoalContribution struct {
	ID         uuid.UUID       `json:"id"`
	GoalID     uuid.UUID       `json:"goalId"`
	MovementID *uuid.UUID      `json:"movementId,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Validate checks the contribution invariants.
func (c *GoalContribution) Validate() error {
	if c.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// GoalFilters narrows goal listings
type GoalFilters struct {
	Status   *GoalStatus
	Category *string
	Year     *int
}

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) (*Goal, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
	// List returns goals ordered by CreatedAt then ID ascending so that
	// first-encountered tie-breaks downstream are reproducible.
	List(ctx context.Context, userID uuid.UUID, filters *GoalFilters) ([]*Goal, error)
	Update(ctx context.Context, goal *Goal) (*Goal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type GoalContributionRepository interface {
	Create(ctx context.Context, contribution *GoalContribution) (*GoalContribution, error)
	ListByGoal(ctx context.Context, goalID uuid.UUID) ([]*GoalContribution, error)
	ListByUser(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*GoalContribution, error)
}

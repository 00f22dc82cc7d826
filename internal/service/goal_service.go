package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/util"
	"github.com/ledgerlight/ledgerlight-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// GoalService handles savings-goal business logic
type GoalService struct {
	goalRepo         domain.GoalRepository
	contributionRepo domain.GoalContributionRepository
	movementRepo     domain.MovementRepository
	eventPublisher   websocket.EventPublisher
	now              func() time.Time
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.GoalRepository, contributionRepo domain.GoalContributionRepository, movementRepo domain.MovementRepository) *GoalService {
	return &GoalService{
		goalRepo:         goalRepo,
		contributionRepo: contributionRepo,
		movementRepo:     movementRepo,
		now:              time.Now,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *GoalService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// SetNowFunc overrides the clock, for tests
func (s *GoalService) SetNowFunc(now func() time.Time) {
	s.now = now
}

func (s *GoalService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateGoalInput holds the input for creating a goal
type CreateGoalInput struct {
	Title        string
	Category     *string
	TargetAmount decimal.Decimal
	TargetDate   *time.Time
}

// CreateGoal creates a new active goal
func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, input CreateGoalInput) (*domain.Goal, error) {
	var category *string
	if input.Category != nil {
		trimmed := strings.TrimSpace(*input.Category)
		if trimmed != "" {
			category = &trimmed
		}
	}

	var targetDate *time.Time
	if input.TargetDate != nil {
		d := util.StartOfDay(*input.TargetDate)
		targetDate = &d
	}

	goal := &domain.Goal{
		UserID:        userID,
		Title:         strings.TrimSpace(input.Title),
		Category:      category,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    targetDate,
		Status:        domain.GoalStatusActive,
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	created, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.GoalCreated(created))
	return created, nil
}

// GetGoals lists the user's goals with optional filters
func (s *GoalService) GetGoals(ctx context.Context, userID uuid.UUID, filters *domain.GoalFilters) ([]*domain.Goal, error) {
	return s.goalRepo.List(ctx, userID, filters)
}

// GetGoalByID retrieves a goal by ID
func (s *GoalService) GetGoalByID(ctx context.Context, userID, id uuid.UUID) (*domain.Goal, error) {
	return s.goalRepo.GetByID(ctx, userID, id)
}

// UpdateGoalInput holds the input for updating a goal
type UpdateGoalInput struct {
	Title           *string
	Category        *string
	TargetAmount    *decimal.Decimal
	TargetDate      *time.Time
	ClearTargetDate bool
	Status          *domain.GoalStatus
}

// UpdateGoal applies a partial update. A status change to completed stamps
// CompletedAt; any change away from completed clears it, keeping the
// completedAt-iff-completed invariant intact.
func (s *GoalService) UpdateGoal(ctx context.Context, userID, id uuid.UUID, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		goal.Title = strings.TrimSpace(*input.Title)
	}
	if input.Category != nil {
		trimmed := strings.TrimSpace(*input.Category)
		if trimmed == "" {
			goal.Category = nil
		} else {
			goal.Category = &trimmed
		}
	}
	if input.TargetAmount != nil {
		goal.TargetAmount = *input.TargetAmount
	}
	if input.ClearTargetDate {
		goal.TargetDate = nil
	} else if input.TargetDate != nil {
		d := util.StartOfDay(*input.TargetDate)
		goal.TargetDate = &d
	}

	completedNow := false
	if input.Status != nil && *input.Status != goal.Status {
		if !input.Status.IsValid() {
			return nil, domain.ErrInvalidGoalStatus
		}
		goal.Status = *input.Status
		if goal.Status == domain.GoalStatusCompleted {
			completedAt := s.now().UTC()
			goal.CompletedAt = &completedAt
			completedNow = true
		} else {
			goal.CompletedAt = nil
		}
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.goalRepo.Update(ctx, goal)
	if err != nil {
		return nil, err
	}

	if completedNow {
		s.publishEvent(userID, websocket.GoalCompleted(updated))
	} else {
		s.publishEvent(userID, websocket.GoalUpdated(updated))
	}
	return updated, nil
}

// DeleteGoal deletes a goal
func (s *GoalService) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	goal, err := s.goalRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.goalRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.GoalDeleted(goal))
	return nil
}

// AddContributionInput holds the input for contributing to a goal
type AddContributionInput struct {
	Amount     decimal.Decimal
	MovementID *uuid.UUID
}

// AddContribution records a contribution and adds it to the goal's current
// amount. Over-funding past the target is legal.
func (s *GoalService) AddContribution(ctx context.Context, userID, goalID uuid.UUID, input AddContributionInput) (*domain.GoalContribution, error) {
	goal, err := s.goalRepo.GetByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.MovementID != nil {
		if _, err := s.movementRepo.GetByID(ctx, userID, *input.MovementID); err != nil {
			return nil, domain.ErrMovementNotFound
		}
	}

	contribution := &domain.GoalContribution{
		GoalID:     goalID,
		MovementID: input.MovementID,
		Amount:     input.Amount,
	}
	if err := contribution.Validate(); err != nil {
		return nil, err
	}

	created, err := s.contributionRepo.Create(ctx, contribution)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(input.Amount)
	if _, err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.ContributionCreated(created))
	return created, nil
}

// GetContributions lists contributions for a goal
func (s *GoalService) GetContributions(ctx context.Context, userID, goalID uuid.UUID) ([]*domain.GoalContribution, error) {
	if _, err := s.goalRepo.GetByID(ctx, userID, goalID); err != nil {
		return nil, err
	}
	return s.contributionRepo.ListByGoal(ctx, goalID)
}

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

// MovementService handles money-movement business logic
type MovementService struct {
	movementRepo   domain.MovementRepository
	categoryRepo   domain.CategoryRepository
	eventPublisher websocket.EventPublisher
}

// NewMovementService creates a new MovementService
func NewMovementService(movementRepo domain.MovementRepository, categoryRepo domain.CategoryRepository) *MovementService {
	return &MovementService{
		movementRepo: movementRepo,
		categoryRepo: categoryRepo,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *MovementService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *MovementService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateMovementInput holds the input for creating a movement
type CreateMovementInput struct {
	Kind        domain.MovementKind
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	OccurredOn  *time.Time
	Description string
}

// CreateMovement creates a new movement with validation. The category, when
// provided, must exist, belong to the user, and share the movement's kind.
func (s *MovementService) CreateMovement(ctx context.Context, userID uuid.UUID, input CreateMovementInput) (*domain.Movement, error) {
	occurredOn := util.StartOfDay(time.Now().UTC())
	if input.OccurredOn != nil {
		occurredOn = util.StartOfDay(*input.OccurredOn)
	}

	movement := &domain.Movement{
		UserID:      userID,
		Kind:        input.Kind,
		Amount:      input.Amount,
		CategoryID:  input.CategoryID,
		OccurredOn:  occurredOn,
		Description: strings.TrimSpace(input.Description),
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, userID, input.CategoryID, input.Kind); err != nil {
		return nil, err
	}

	created, err := s.movementRepo.Create(ctx, movement)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.MovementCreated(created))
	return created, nil
}

// GetMovements retrieves movements for a user with optional filters and pagination
func (s *MovementService) GetMovements(ctx context.Context, userID uuid.UUID, filters *domain.MovementFilters) (*domain.PaginatedMovements, error) {
	return s.movementRepo.List(ctx, userID, filters)
}

// GetMovementByID retrieves a movement by ID for a user
func (s *MovementService) GetMovementByID(ctx context.Context, userID, id uuid.UUID) (*domain.Movement, error) {
	return s.movementRepo.GetByID(ctx, userID, id)
}

// UpdateMovementInput holds the input for updating a movement
type UpdateMovementInput struct {
	Kind          *domain.MovementKind
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	ClearCategory bool
	OccurredOn    *time.Time
	Description   *string
}

// UpdateMovement applies a partial update to a movement
func (s *MovementService) UpdateMovement(ctx context.Context, userID, id uuid.UUID, input UpdateMovementInput) (*domain.Movement, error) {
	movement, err := s.movementRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Kind != nil {
		movement.Kind = *input.Kind
	}
	if input.Amount != nil {
		movement.Amount = *input.Amount
	}
	if input.ClearCategory {
		movement.CategoryID = nil
	} else if input.CategoryID != nil {
		movement.CategoryID = input.CategoryID
	}
	if input.OccurredOn != nil {
		movement.OccurredOn = util.StartOfDay(*input.OccurredOn)
	}
	if input.Description != nil {
		movement.Description = strings.TrimSpace(*input.Description)
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, userID, movement.CategoryID, movement.Kind); err != nil {
		return nil, err
	}

	updated, err := s.movementRepo.Update(ctx, movement)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.MovementUpdated(updated))
	return updated, nil
}

// DeleteMovement deletes a movement
func (s *MovementService) DeleteMovement(ctx context.Context, userID, id uuid.UUID) error {
	movement, err := s.movementRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.movementRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.MovementDeleted(movement))
	return nil
}

// checkCategory validates that a referenced category exists for the user and
// matches the movement kind. A nil category is always valid; it renders as
// "Uncategorized" in reports.
func (s *MovementService) checkCategory(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, kind domain.MovementKind) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categoryRepo.GetByID(ctx, userID, *categoryID)
	if err != nil {
		return domain.ErrCategoryNotFound
	}
	if category.Kind != kind {
		return domain.ErrCategoryKindMismatch
	}
	return nil
}

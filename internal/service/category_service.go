package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/websocket"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo   domain.CategoryRepository
	movementRepo   domain.MovementRepository
	eventPublisher websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, movementRepo domain.MovementRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *CategoryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CategoryService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, name string, kind domain.MovementKind) (*domain.Category, error) {
	category := &domain.Category{
		UserID: userID,
		Name:   strings.TrimSpace(name),
		Kind:   kind,
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.CategoryCreated(created))
	return created, nil
}

// GetCategories lists the user's categories
func (s *CategoryService) GetCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx, userID)
}

// RenameCategory updates a category's name. Kind is immutable: historical
// aggregations depend on a category never switching sides.
func (s *CategoryService) RenameCategory(ctx context.Context, userID, id uuid.UUID, name string) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(name)
	if err := category.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.CategoryUpdated(updated))
	return updated, nil
}

// DeleteCategory deletes a category if no movement references it
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	count, err := s.movementRepo.CountByCategory(ctx, userID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.CategoryDeleted(category))
	return nil
}

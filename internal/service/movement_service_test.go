package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestCreateMovement_Success(t *testing.T) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	movementService := NewMovementService(movementRepo, categoryRepo)

	userID := uuid.New()
	occurredOn := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	input := CreateMovementInput{
		Kind:        domain.MovementKindExpense,
		Amount:      decimal.NewFromFloat(42.50),
		OccurredOn:  &occurredOn,
		Description: "  Groceries  ",
	}

	movement, err := movementService.CreateMovement(context.Background(), userID, input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if movement.Kind != domain.MovementKindExpense {
		t.Errorf("Expected kind 'expense', got %s", movement.Kind)
	}
	if !movement.Amount.Equal(decimal.NewFromFloat(42.50)) {
		t.Errorf("Expected amount '42.50', got %s", movement.Amount.String())
	}
	if movement.Description != "Groceries" {
		t.Errorf("Expected trimmed description 'Groceries', got %q", movement.Description)
	}
	// Occurrence dates are truncated to the day
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !movement.OccurredOn.Equal(want) {
		t.Errorf("Expected occurredOn %v, got %v", want, movement.OccurredOn)
	}
	if movement.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, movement.UserID)
	}
}

func TestCreateMovement_InvalidKind(t *testing.T) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	movementService := NewMovementService(movementRepo, categoryRepo)

	input := CreateMovementInput{
		Kind:   domain.MovementKind("cheque"),
		Amount: decimal.NewFromInt(10),
	}

	_, err := movementService.CreateMovement(context.Background(), uuid.New(), input)
	if !errors.Is(err, domain.ErrInvalidMovementKind) {
		t.Errorf("Expected ErrInvalidMovementKind, got %v", err)
	}
}

func TestCreateMovement_NegativeAmount(t *testing.T) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	movementService := NewMovementService(movementRepo, categoryRepo)

	input := CreateMovementInput{
		Kind:   domain.MovementKindIncome,
		Amount: decimal.NewFromInt(-100),
	}

	_, err := movementService.CreateMovement(context.Background(), uuid.New(), input)
	if !errors.Is(err, domain.ErrNegativeAmount) {
		t.Errorf("Expected ErrNegativeAmount, got %v", err)
	}
}

func TestCreateMovement_CategoryKindMismatch(t *testing.T) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	movementService := NewMovementService(movementRepo, categoryRepo)

	userID := uuid.New()
	category := &domain.Category{UserID: userID, Name: "Salary", Kind: domain.MovementKindIncome}
	categoryRepo.AddCategory(category)

	input := CreateMovementInput{
		Kind:       domain.MovementKindExpense,
		Amount:     decimal.NewFromInt(50),
		CategoryID: &category.ID,
	}

	_, err := movementService.CreateMovement(context.Background(), userID, input)
	if !errors.Is(err, domain.ErrCategoryKindMismatch) {
		t.Errorf("Expected ErrCategoryKindMismatch, got %v", err)
	}
}

func TestCreateMovement_CategoryNotFound(t *testing.T) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	movementService := NewMovementService(movementRepo, categoryRepo)

	missing := uuid.New()
	input := CreateMovementInput{
		Kind:       domain.MovementKindExpense,
		Amount:     decimal.NewFromInt(50),
		CategoryID: &missing,
	}

	_, err := movementService.CreateMovement(context.Background(), uuid.New(), input)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateMovement_OtherUsersCategory(t *testing.T) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	movementService := NewMovementService(movementRepo, categoryRepo)

	otherUser := uuid.New()
	category := &domain.Category{UserID: otherUser, Name: "Food", Kind: domain.MovementKindExpense}
	categoryRepo.AddCategory(category)

	input := CreateMovementInput{
		Kind:       domain.MovementKindExpense,
		Amount:     decimal.NewFromInt(50),
		CategoryID: &category.ID,
	}

	_, err := movementService.CreateMovement(context.Background(), uuid.New(), input)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound for another user's category, got %v", err)
	}
}

func TestUpdateMovement_ClearCategory(t *testing.T) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	movementService := NewMovementService(movementRepo, categoryRepo)

	userID := uuid.New()
	category := &domain.Category{UserID: userID, Name: "Food", Kind: domain.MovementKindExpense}
	categoryRepo.AddCategory(category)

	movement := &domain.Movement{
		UserID:     userID,
		Kind:       domain.MovementKindExpense,
		Amount:     decimal.NewFromInt(25),
		CategoryID: &category.ID,
		OccurredOn: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	movementRepo.AddMovement(movement)

	updated, err := movementService.UpdateMovement(context.Background(), userID, movement.ID, UpdateMovementInput{
		ClearCategory: true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.CategoryID != nil {
		t.Errorf("Expected category to be cleared, got %v", updated.CategoryID)
	}
}

func TestUpdateMovement_NotFound(t *testing.T) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	movementService := NewMovementService(movementRepo, categoryRepo)

	_, err := movementService.UpdateMovement(context.Background(), uuid.New(), uuid.New(), UpdateMovementInput{})
	if !errors.Is(err, domain.ErrMovementNotFound) {
		t.Errorf("Expected ErrMovementNotFound, got %v", err)
	}
}

func TestDeleteMovement_Success(t *testing.T) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	movementService := NewMovementService(movementRepo, categoryRepo)

	userID := uuid.New()
	movement := &domain.Movement{
		UserID:     userID,
		Kind:       domain.MovementKindIncome,
		Amount:     decimal.NewFromInt(500),
		OccurredOn: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	movementRepo.AddMovement(movement)

	if err := movementService.DeleteMovement(context.Background(), userID, movement.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := movementService.GetMovementByID(context.Background(), userID, movement.ID); !errors.Is(err, domain.ErrMovementNotFound) {
		t.Errorf("Expected ErrMovementNotFound after delete, got %v", err)
	}
}

func TestGetMovements_FiltersByKind(t *testing.T) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	movementService := NewMovementService(movementRepo, categoryRepo)

	userID := uuid.New()
	movementRepo.AddMovement(&domain.Movement{
		UserID:     userID,
		Kind:       domain.MovementKindIncome,
		Amount:     decimal.NewFromInt(1000),
		OccurredOn: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	})
	movementRepo.AddMovement(&domain.Movement{
		UserID:     userID,
		Kind:       domain.MovementKindExpense,
		Amount:     decimal.NewFromInt(200),
		OccurredOn: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	})

	kind := domain.MovementKindExpense
	page, err := movementService.GetMovements(context.Background(), userID, &domain.MovementFilters{Kind: &kind})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(page.Data) != 1 {
		t.Fatalf("Expected 1 movement, got %d", len(page.Data))
	}
	if page.Data[0].Kind != domain.MovementKindExpense {
		t.Errorf("Expected expense movement, got %s", page.Data[0].Kind)
	}
	if page.TotalItems != 1 {
		t.Errorf("Expected total 1, got %d", page.TotalItems)
	}
}

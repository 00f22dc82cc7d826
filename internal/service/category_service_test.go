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

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	movementRepo := testutil.NewMockMovementRepository()
	categoryService := NewCategoryService(categoryRepo, movementRepo)

	userID := uuid.New()
	category, err := categoryService.CreateCategory(context.Background(), userID, "  Groceries ", domain.MovementKindExpense)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.Name != "Groceries" {
		t.Errorf("Expected trimmed name 'Groceries', got %q", category.Name)
	}
	if category.Kind != domain.MovementKindExpense {
		t.Errorf("Expected kind 'expense', got %s", category.Kind)
	}
}

func TestCreateCategory_EmptyName(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	movementRepo := testutil.NewMockMovementRepository()
	categoryService := NewCategoryService(categoryRepo, movementRepo)

	_, err := categoryService.CreateCategory(context.Background(), uuid.New(), "   ", domain.MovementKindExpense)
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestCreateCategory_InvalidKind(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	movementRepo := testutil.NewMockMovementRepository()
	categoryService := NewCategoryService(categoryRepo, movementRepo)

	_, err := categoryService.CreateCategory(context.Background(), uuid.New(), "Misc", domain.MovementKind("loan"))
	if !errors.Is(err, domain.ErrInvalidMovementKind) {
		t.Errorf("Expected ErrInvalidMovementKind, got %v", err)
	}
}

func TestRenameCategory_KeepsKind(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	movementRepo := testutil.NewMockMovementRepository()
	categoryService := NewCategoryService(categoryRepo, movementRepo)

	userID := uuid.New()
	category := &domain.Category{UserID: userID, Name: "Food", Kind: domain.MovementKindExpense}
	categoryRepo.AddCategory(category)

	renamed, err := categoryService.RenameCategory(context.Background(), userID, category.ID, "Dining")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if renamed.Name != "Dining" {
		t.Errorf("Expected name 'Dining', got %s", renamed.Name)
	}
	if renamed.Kind != domain.MovementKindExpense {
		t.Errorf("Expected kind to stay 'expense', got %s", renamed.Kind)
	}
}

func TestDeleteCategory_InUse(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	movementRepo := testutil.NewMockMovementRepository()
	categoryService := NewCategoryService(categoryRepo, movementRepo)

	userID := uuid.New()
	category := &domain.Category{UserID: userID, Name: "Food", Kind: domain.MovementKindExpense}
	categoryRepo.AddCategory(category)

	movementRepo.AddMovement(&domain.Movement{
		UserID:     userID,
		Kind:       domain.MovementKindExpense,
		Amount:     decimal.NewFromInt(30),
		CategoryID: &category.ID,
		OccurredOn: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	})

	err := categoryService.DeleteCategory(context.Background(), userID, category.ID)
	if !errors.Is(err, domain.ErrCategoryInUse) {
		t.Errorf("Expected ErrCategoryInUse, got %v", err)
	}
}

func TestDeleteCategory_Unused(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	movementRepo := testutil.NewMockMovementRepository()
	categoryService := NewCategoryService(categoryRepo, movementRepo)

	userID := uuid.New()
	category := &domain.Category{UserID: userID, Name: "Food", Kind: domain.MovementKindExpense}
	categoryRepo.AddCategory(category)

	if err := categoryService.DeleteCategory(context.Background(), userID, category.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	categories, _ := categoryService.GetCategories(context.Background(), userID)
	if len(categories) != 0 {
		t.Errorf("Expected no categories after delete, got %d", len(categories))
	}
}

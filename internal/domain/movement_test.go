package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMovementKindConstants(t *testing.T) {
	tests := []struct {
		name     string
		kind     MovementKind
		expected string
	}{
		{"income kind", MovementKindIncome, "income"},
		{"expense kind", MovementKindExpense, "expense"},
		{"savings kind", MovementKindSavings, "savings"},
		{"investment kind", MovementKindInvestment, "investment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.kind) != tt.expected {
				t.Errorf("MovementKind constant %s = %s, want %s", tt.name, tt.kind, tt.expected)
			}
		})
	}
}

func TestMovementKindIsValid(t *testing.T) {
	tests := []struct {
		name  string
		kind  MovementKind
		valid bool
	}{
		{"income", MovementKindIncome, true},
		{"expense", MovementKindExpense, true},
		{"savings", MovementKindSavings, true},
		{"investment", MovementKindInvestment, true},
		{"empty", MovementKind(""), false},
		{"unknown", MovementKind("transfer"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestMovementValidate(t *testing.T) {
	occurredOn := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		movement Movement
		wantErr  error
	}{
		{
			name: "valid movement",
			movement: Movement{
				Kind:       MovementKindExpense,
				Amount:     decimal.NewFromInt(10),
				OccurredOn: occurredOn,
			},
			wantErr: nil,
		},
		{
			name: "zero amount is valid",
			movement: Movement{
				Kind:       MovementKindIncome,
				Amount:     decimal.Zero,
				OccurredOn: occurredOn,
			},
			wantErr: nil,
		},
		{
			name: "invalid kind",
			movement: Movement{
				Kind:       MovementKind("loan"),
				Amount:     decimal.NewFromInt(10),
				OccurredOn: occurredOn,
			},
			wantErr: ErrInvalidMovementKind,
		},
		{
			name: "negative amount",
			movement: Movement{
				Kind:       MovementKindExpense,
				Amount:     decimal.NewFromInt(-1),
				OccurredOn: occurredOn,
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name: "missing date",
			movement: Movement{
				Kind:   MovementKindExpense,
				Amount: decimal.NewFromInt(10),
			},
			wantErr: ErrDateRequired,
		},
		{
			name: "description too long",
			movement: Movement{
				Kind:        MovementKindExpense,
				Amount:      decimal.NewFromInt(10),
				OccurredOn:  occurredOn,
				Description: strings.Repeat("x", MaxDescriptionLength+1),
			},
			wantErr: ErrDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.movement.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  error
	}{
		{"valid category", Category{Name: "Food", Kind: MovementKindExpense}, nil},
		{"empty name", Category{Kind: MovementKindExpense}, ErrNameRequired},
		{"name too long", Category{Name: strings.Repeat("x", MaxCategoryNameLength+1), Kind: MovementKindExpense}, ErrNameTooLong},
		{"invalid kind", Category{Name: "Food", Kind: MovementKind("misc")}, ErrInvalidMovementKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.category.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

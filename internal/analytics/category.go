package analytics

import (
	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// CategoryBreakdown is the aggregated amount, count and share of total for
// one category within a period.
type CategoryBreakdown struct {
	CategoryID *uuid.UUID      `json:"categoryId,omitempty"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentageOfTotal"`
}

var oneHundred = decimal.NewFromInt(100)

// ByCategory groups movements by category, summing amounts and counting
// movements. Groups appear in first-encountered input order, which is what
// makes downstream tie-breaks deterministic. Movements without a category,
// or referencing a category missing from names, land in "Uncategorized".
// Percentages are shares of the grand total and are all 0 when the total is 0.
func ByCategory(movements []*domain.Movement, names map[uuid.UUID]string) []CategoryBreakdown {
	breakdowns := []CategoryBreakdown{}
	index := make(map[uuid.UUID]int)
	total := decimal.Zero

	for _, m := range movements {
		key := uuid.Nil
		var catID *uuid.UUID
		label := domain.UncategorizedLabel
		if m.CategoryID != nil {
			if name, ok := names[*m.CategoryID]; ok {
				key = *m.CategoryID
				catID = m.CategoryID
				label = name
			}
		}

		i, ok := index[key]
		if !ok {
			i = len(breakdowns)
			index[key] = i
			breakdowns = append(breakdowns, CategoryBreakdown{
				CategoryID: catID,
				Category:   label,
				Amount:     decimal.Zero,
				Percentage: decimal.Zero,
			})
		}
		breakdowns[i].Amount = breakdowns[i].Amount.Add(m.Amount)
		breakdowns[i].Count++
		total = total.Add(m.Amount)
	}

	if total.IsPositive() {
		for i := range breakdowns {
			breakdowns[i].Percentage = breakdowns[i].Amount.Div(total).Mul(oneHundred)
		}
	}

	return breakdowns
}

// FilterByKind returns the movements of a single kind, preserving order.
// Spending reports scope category breakdowns to expense movements.
func FilterByKind(movements []*domain.Movement, kind domain.MovementKind) []*domain.Movement {
	filtered := []*domain.Movement{}
	for _, m := range movements {
		if m.Kind == kind {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

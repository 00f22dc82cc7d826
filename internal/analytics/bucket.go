// Package analytics turns flat streams of dated money movements and goal
// records into time-bucketed summaries, category breakdowns, trend
// classifications and derived insights. Everything in this package is a pure
// computation over in-memory snapshots: no I/O, no clock reads ("today" is
// always an explicit parameter), safe for concurrent use.
package analytics

import (
	"time"

	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/util"
	"github.com/shopspring/decimal"
)

// Granularity is the calendar period size used for bucketing
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity parses a granularity string, reporting whether it is valid.
func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return Granularity(s), true
	}
	return "", false
}

// Bucket is a single calendar period with aggregated movement totals.
// NetFlow = Income - Expenses + Savings + Investments: income adds to net
// worth, expenses subtract, and money moved into savings or investments is
// treated as still part of net worth. Reports and the dashboard depend on
// this convention; do not change it without recomputing historical totals.
type Bucket struct {
	Key         string          `json:"key"`
	Start       time.Time       `json:"start"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Savings     decimal.Decimal `json:"savings"`
	Investments decimal.Decimal `json:"investments"`
	NetFlow     decimal.Decimal `json:"netFlow"`
	Count       int             `json:"count"`
}

// periodStart aligns t to the start of its period.
func periodStart(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return util.StartOfWeek(t)
	case GranularityMonth:
		return util.StartOfMonth(t)
	case GranularityYear:
		return util.StartOfYear(t)
	default:
		return util.StartOfDay(t)
	}
}

// nextPeriod advances an aligned period start to the next period.
func nextPeriod(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return t.AddDate(0, 0, 7)
	case GranularityMonth:
		return t.AddDate(0, 1, 0)
	case GranularityYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// periodKey formats an aligned period start as the bucket key:
// day and week use YYYY-MM-DD (week keys are the Sunday start date),
// month uses YYYY-MM, year uses YYYY.
func periodKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// PeriodKey returns the bucket key for the period containing t at the given
// granularity.
func PeriodKey(t time.Time, g Granularity) string {
	return periodKey(periodStart(t, g), g)
}

// Buckets partitions [start, end] inclusive into calendar periods of the
// given granularity and assigns each movement to the period containing its
// OccurredOn date. Every period in the range is emitted, zero-filled when no
// movement falls in it, in chronological order regardless of input order.
// An inverted range produces an empty slice, not an error.
func Buckets(start, end time.Time, g Granularity, movements []*domain.Movement) []Bucket {
	if start.After(end) {
		return []Bucket{}
	}

	buckets := []Bucket{}
	index := make(map[string]int)
	for cursor := periodStart(start, g); !cursor.After(end); cursor = nextPeriod(cursor, g) {
		key := periodKey(cursor, g)
		index[key] = len(buckets)
		buckets = append(buckets, Bucket{
			Key:         key,
			Start:       cursor,
			Income:      decimal.Zero,
			Expenses:    decimal.Zero,
			Savings:     decimal.Zero,
			Investments: decimal.Zero,
			NetFlow:     decimal.Zero,
			Count:       0,
		})
	}

	for _, m := range movements {
		i, ok := index[periodKey(periodStart(m.OccurredOn, g), g)]
		if !ok {
			// Movement outside the requested range; callers normally fetch
			// range-bounded sets, so simply skip it.
			continue
		}
		b := &buckets[i]
		switch m.Kind {
		case domain.MovementKindIncome:
			b.Income = b.Income.Add(m.Amount)
		case domain.MovementKindExpense:
			b.Expenses = b.Expenses.Add(m.Amount)
		case domain.MovementKindSavings:
			b.Savings = b.Savings.Add(m.Amount)
		case domain.MovementKindInvestment:
			b.Investments = b.Investments.Add(m.Amount)
		}
		b.Count++
	}

	for i := range buckets {
		b := &buckets[i]
		b.NetFlow = b.Income.Sub(b.Expenses).Add(b.Savings).Add(b.Investments)
	}

	return buckets
}

// SumBuckets folds a bucket sequence into a single totals bucket keyed by
// the first bucket's key span. Used by report assemblers for period totals.
func SumBuckets(buckets []Bucket) Bucket {
	total := Bucket{
		Income:      decimal.Zero,
		Expenses:    decimal.Zero,
		Savings:     decimal.Zero,
		Investments: decimal.Zero,
		NetFlow:     decimal.Zero,
	}
	for _, b := range buckets {
		total.Income = total.Income.Add(b.Income)
		total.Expenses = total.Expenses.Add(b.Expenses)
		total.Savings = total.Savings.Add(b.Savings)
		total.Investments = total.Investments.Add(b.Investments)
		total.NetFlow = total.NetFlow.Add(b.NetFlow)
		total.Count += b.Count
	}
	return total
}

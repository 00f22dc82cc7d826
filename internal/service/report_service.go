package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/analytics"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/util"
	"github.com/shopspring/decimal"
)

// ReportService assembles the annual, monthly, category and goals reports.
// It is thin orchestration: fetch records, run the analytics package, shape
// the result. All computation lives in analytics.
type ReportService struct {
	movementRepo     domain.MovementRepository
	categoryRepo     domain.CategoryRepository
	goalRepo         domain.GoalRepository
	contributionRepo domain.GoalContributionRepository
	now              func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	movementRepo domain.MovementRepository,
	categoryRepo domain.CategoryRepository,
	goalRepo domain.GoalRepository,
	contributionRepo domain.GoalContributionRepository,
) *ReportService {
	return &ReportService{
		movementRepo:     movementRepo,
		categoryRepo:     categoryRepo,
		goalRepo:         goalRepo,
		contributionRepo: contributionRepo,
		now:              time.Now,
	}
}

// SetNowFunc overrides the clock, for tests
func (s *ReportService) SetNowFunc(now func() time.Time) {
	s.now = now
}

// GrowthRates compares one period's totals against the previous period's.
// A 0% rate may mean "previous period was zero", not "no change".
type GrowthRates struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	NetFlow  decimal.Decimal `json:"netFlow"`
}

func growthRatesOf(current, previous analytics.Bucket) GrowthRates {
	return GrowthRates{
		Income:   analytics.GrowthRate(current.Income, previous.Income),
		Expenses: analytics.GrowthRate(current.Expenses, previous.Expenses),
		NetFlow:  analytics.GrowthRate(current.NetFlow, previous.NetFlow),
	}
}

// AnnualReport is the yearly report shape consumed by the API layer
type AnnualReport struct {
	Year               int                           `json:"year"`
	Months             []analytics.Bucket            `json:"months"`
	Totals             analytics.Bucket              `json:"totals"`
	Categories         []analytics.CategoryBreakdown `json:"categories"`
	SpendingTrend      analytics.Trend               `json:"spendingTrend"`
	MostActiveCategory string                        `json:"mostActiveCategory"`
	YearOverYear       GrowthRates                   `json:"yearOverYear"`
}

// GetAnnualReport assembles the report for one calendar year: twelve monthly
// buckets, yearly totals, the expense category breakdown, the spending trend
// across the months, and growth against the previous year.
func (s *ReportService) GetAnnualReport(ctx context.Context, userID uuid.UUID, year int) (*AnnualReport, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	movements, err := s.movementRepo.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	previous, err := s.movementRepo.ListByDateRange(ctx, userID,
		start.AddDate(-1, 0, 0), end.AddDate(-1, 0, 0))
	if err != nil {
		return nil, err
	}

	names, err := s.categoryNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	months := analytics.Buckets(start, end, analytics.GranularityMonth, movements)
	previousTotals := analytics.SumBuckets(
		analytics.Buckets(start.AddDate(-1, 0, 0), end.AddDate(-1, 0, 0), analytics.GranularityMonth, previous))

	expenses := analytics.FilterByKind(movements, domain.MovementKindExpense)
	categories := analytics.ByCategory(expenses, names)

	spendSeries := make([]decimal.Decimal, len(months))
	for i, b := range months {
		spendSeries[i] = b.Expenses
	}

	totals := analytics.SumBuckets(months)

	return &AnnualReport{
		Year:               year,
		Months:             months,
		Totals:             totals,
		Categories:         categories,
		SpendingTrend:      analytics.ClassifyTrend(spendSeries),
		MostActiveCategory: analytics.MostActiveCategory(categories),
		YearOverYear:       growthRatesOf(totals, previousTotals),
	}, nil
}

// MonthlyReport is the monthly report shape consumed by the API layer
type MonthlyReport struct {
	Year               int                           `json:"year"`
	Month              int                           `json:"month"`
	Days               []analytics.Bucket            `json:"days"`
	Totals             analytics.Bucket              `json:"totals"`
	Categories         []analytics.CategoryBreakdown `json:"categories"`
	MostActiveCategory string                        `json:"mostActiveCategory"`
	MonthOverMonth     GrowthRates                   `json:"monthOverMonth"`
}

// GetMonthlyReport assembles the report for one calendar month: daily
// buckets, month totals, the expense category breakdown, and growth against
// the previous month.
func (s *ReportService) GetMonthlyReport(ctx context.Context, userID uuid.UUID, year, month int) (*MonthlyReport, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := util.EndOfMonth(start)

	movements, err := s.movementRepo.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	prevYear, prevMonth := util.PreviousMonth(year, month)
	prevStart := time.Date(prevYear, time.Month(prevMonth), 1, 0, 0, 0, 0, time.UTC)
	prevEnd := util.EndOfMonth(prevStart)
	previous, err := s.movementRepo.ListByDateRange(ctx, userID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	names, err := s.categoryNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	days := analytics.Buckets(start, end, analytics.GranularityDay, movements)
	totals := analytics.SumBuckets(days)
	previousTotals := analytics.SumBuckets(
		analytics.Buckets(prevStart, prevEnd, analytics.GranularityDay, previous))

	expenses := analytics.FilterByKind(movements, domain.MovementKindExpense)
	categories := analytics.ByCategory(expenses, names)

	return &MonthlyReport{
		Year:               year,
		Month:              month,
		Days:               days,
		Totals:             totals,
		Categories:         categories,
		MostActiveCategory: analytics.MostActiveCategory(categories),
		MonthOverMonth:     growthRatesOf(totals, previousTotals),
	}, nil
}

// CategoryTrend pairs a category with its classified monthly spending trend
type CategoryTrend struct {
	Category string          `json:"category"`
	Trend    analytics.Trend `json:"trend"`
}

// CategoryReport is the per-category report shape consumed by the API layer
type CategoryReport struct {
	Start       time.Time                     `json:"start"`
	End         time.Time                     `json:"end"`
	Kind        domain.MovementKind           `json:"kind"`
	Granularity analytics.Granularity         `json:"granularity"`
	Categories  []analytics.CategoryBreakdown `json:"categories"`
	Trends      []CategoryTrend               `json:"trends"`
}

// GetCategoryReport assembles the category breakdown for [start, end] plus a
// per-category trend classified over the range's period series at the given
// granularity. This assembler does not tolerate an inverted range; that is a
// caller bug, not a boundary case.
func (s *ReportService) GetCategoryReport(ctx context.Context, userID uuid.UUID, start, end time.Time, kind domain.MovementKind, granularity analytics.Granularity) (*CategoryReport, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidDateRange
	}
	if !kind.IsValid() {
		return nil, domain.ErrInvalidMovementKind
	}

	movements, err := s.movementRepo.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	names, err := s.categoryNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	scoped := analytics.FilterByKind(movements, kind)
	categories := analytics.ByCategory(scoped, names)

	// One period series per category, in breakdown order
	periods := analytics.Buckets(start, end, granularity, nil)
	keyIndex := make(map[string]int, len(periods))
	for i, b := range periods {
		keyIndex[b.Key] = i
	}

	series := make(map[string][]decimal.Decimal, len(categories))
	for _, c := range categories {
		series[c.Category] = make([]decimal.Decimal, len(periods))
		for i := range series[c.Category] {
			series[c.Category][i] = decimal.Zero
		}
	}
	for _, m := range scoped {
		label := domain.UncategorizedLabel
		if m.CategoryID != nil {
			if name, ok := names[*m.CategoryID]; ok {
				label = name
			}
		}
		i, ok := keyIndex[analytics.PeriodKey(m.OccurredOn, granularity)]
		if !ok {
			continue
		}
		series[label][i] = series[label][i].Add(m.Amount)
	}

	trends := make([]CategoryTrend, 0, len(categories))
	for _, c := range categories {
		trends = append(trends, CategoryTrend{
			Category: c.Category,
			Trend:    analytics.ClassifyTrend(series[c.Category]),
		})
	}

	return &CategoryReport{
		Start:       start,
		End:         end,
		Kind:        kind,
		Granularity: granularity,
		Categories:  categories,
		Trends:      trends,
	}, nil
}

// GoalsReport is the goals report shape consumed by the API layer
type GoalsReport struct {
	Goals    []analytics.GoalProgress `json:"goals"`
	Overdue  []analytics.GoalProgress `json:"overdue"`
	Insights analytics.GoalInsights   `json:"insights"`
}

// GetGoalsReport assembles per-goal progress and the goal insights. The
// contribution average is scoped to the filter year when one is given,
// otherwise to the trailing twelve months.
func (s *ReportService) GetGoalsReport(ctx context.Context, userID uuid.UUID, filters *domain.GoalFilters) (*GoalsReport, error) {
	today := s.now().UTC()

	goals, err := s.goalRepo.List(ctx, userID, filters)
	if err != nil {
		return nil, err
	}

	progresses, err := analytics.GoalProgressAll(goals, today)
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	if filters != nil && filters.Year != nil {
		start = time.Date(*filters.Year, 1, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(*filters.Year, 12, 31, 0, 0, 0, 0, time.UTC)
	} else {
		end = util.StartOfDay(today)
		start = util.StartOfMonth(end.AddDate(0, -11, 0))
	}

	contributions, err := s.contributionRepo.ListByUser(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	months := util.MonthsInRange(start, end)

	return &GoalsReport{
		Goals:    progresses,
		Overdue:  analytics.OverdueGoals(progresses),
		Insights: analytics.ComputeGoalInsights(progresses, contributions, months),
	}, nil
}

// categoryNames builds the category ID -> name lookup used by breakdowns
func (s *ReportService) categoryNames(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]string, error) {
	categories, err := s.categoryRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

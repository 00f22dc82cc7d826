package analytics

import "github.com/shopspring/decimal"

// TrendDirection classifies how a series of period values is moving
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// trendThreshold is the growth percentage beyond which a series is no
// longer considered stable.
var trendThreshold = decimal.NewFromInt(5)

// Trend is the classification of an ordered series of period values.
type Trend struct {
	Direction     TrendDirection  `json:"direction"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}

// GrowthRate returns ((current - previous) / |previous|) * 100.
// When previous is 0 the rate is defined as 0; this is a division-by-zero
// policy, not a mathematical identity, so callers must not read a 0% growth
// from zero as "no change".
func GrowthRate(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(oneHundred)
}

// ClassifyTrend splits the series into first and second halves (the extra
// element of an odd-length series goes to the second half), compares the
// half means, and classifies the movement: increasing above +5%, decreasing
// below -5%, stable otherwise. Series shorter than 2 are always stable with
// a 0% change.
func ClassifyTrend(series []decimal.Decimal) Trend {
	if len(series) < 2 {
		return Trend{Direction: TrendStable, ChangePercent: decimal.Zero}
	}

	mid := len(series) / 2
	firstMean := mean(series[:mid])
	secondMean := mean(series[mid:])

	change := GrowthRate(secondMean, firstMean)

	direction := TrendStable
	if change.GreaterThan(trendThreshold) {
		direction = TrendIncreasing
	} else if change.LessThan(trendThreshold.Neg()) {
		direction = TrendDecreasing
	}

	return Trend{Direction: direction, ChangePercent: change}
}

// mean returns the arithmetic mean of values; 0 for an empty slice.
func mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

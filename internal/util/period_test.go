package util

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday aligns to previous sunday",
			in:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday stays put",
			in:   time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday aligns back six days",
			in:   time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "crosses month boundary",
			in:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEndOfMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		{"january", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 31},
		{"february non-leap", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 28},
		{"february leap", time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 29},
		{"april", time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EndOfMonth(tt.in); got.Day() != tt.want {
				t.Errorf("EndOfMonth(%v).Day() = %d, want %d", tt.in, got.Day(), tt.want)
			}
		})
	}
}

func TestPreviousMonth(t *testing.T) {
	year, month := PreviousMonth(2025, 1)
	if year != 2024 || month != 12 {
		t.Errorf("PreviousMonth(2025, 1) = %d, %d, want 2024, 12", year, month)
	}

	year, month = PreviousMonth(2025, 6)
	if year != 2025 || month != 5 {
		t.Errorf("PreviousMonth(2025, 6) = %d, %d, want 2025, 5", year, month)
	}
}

func TestDaysBetweenCeil(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same instant", from, 0},
		{"exact days", time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), 10},
		{"partial day rounds up", time.Date(2025, 1, 11, 6, 0, 0, 0, time.UTC), 11},
		{"before from", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetweenCeil(from, tt.to); got != tt.want {
				t.Errorf("DaysBetweenCeil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthsInRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{
			name:  "single month",
			start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "full year",
			start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			want:  12,
		},
		{
			name:  "across year boundary",
			start: time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			want:  4,
		},
		{
			name:  "inverted range",
			start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsInRange(tt.start, tt.end); got != tt.want {
				t.Errorf("MonthsInRange() = %d, want %d", got, tt.want)
			}
		})
	}
}

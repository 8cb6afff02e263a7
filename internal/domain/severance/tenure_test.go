package severance

import (
	"testing"
	"time"
)

func TestComputeTenure(t *testing.T) {
	tests := []struct {
		name        string
		hire        time.Time
		termination time.Time
		want        Tenure
	}{
		{name: "whole years", hire: date(2020, 1, 1), termination: date(2024, 1, 1), want: Tenure{Years: 4}},
		{name: "one day", hire: date(2024, 1, 31), termination: date(2024, 2, 1), want: Tenure{Days: 1}},
		{name: "years months days", hire: date(2015, 3, 17), termination: date(2023, 9, 2), want: Tenure{Years: 8, Months: 5, Days: 16}},
		{name: "month end clamps", hire: date(2023, 1, 31), termination: date(2023, 2, 28), want: Tenure{Months: 1}},
		{name: "leap day anniversary", hire: date(2020, 2, 29), termination: date(2021, 2, 28), want: Tenure{Years: 1}},
		{name: "reversed range", hire: date(2024, 1, 2), termination: date(2024, 1, 1), want: Tenure{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTenure(tc.hire, tc.termination)
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestDaysWorkedInCalendarYear(t *testing.T) {
	if got := DaysWorkedInCalendarYear(date(2020, 1, 1), date(2024, 1, 1)); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
	if got := DaysWorkedInCalendarYear(date(2024, 3, 1), date(2024, 3, 10)); got != 10 {
		t.Fatalf("expected 10 days, got %d", got)
	}
	if got := DaysWorkedInCalendarYear(date(2010, 1, 1), date(2024, 12, 31)); got != 365 {
		t.Fatalf("expected leap year capped at 365, got %d", got)
	}
}

func TestVacationDaysForYear(t *testing.T) {
	tests := map[int]int{0: 0, 1: 12, 2: 14, 5: 20, 6: 22, 10: 22, 11: 24, 20: 26, 35: 32, 36: 34, 41: 36}
	for year, want := range tests {
		if got := VacationDaysForYear(year); got != want {
			t.Fatalf("year %d: expected %d days, got %d", year, want, got)
		}
	}
}

package severance

import "time"

// ComputeTenure returns the calendar difference between hire and termination as
// whole years, remaining months and remaining days. Month arithmetic clamps to
// the last day of the month, so a Feb 29 or 31st anchor never overflows.
func ComputeTenure(hire, termination time.Time) Tenure {
	hire = dateOnly(hire)
	termination = dateOnly(termination)
	if !termination.After(hire) {
		return Tenure{}
	}

	months := (termination.Year()-hire.Year())*12 + int(termination.Month()) - int(hire.Month())
	anchor := addMonthsClamped(hire, months)
	if anchor.After(termination) {
		months--
		anchor = addMonthsClamped(hire, months)
	}

	return Tenure{
		Years:  months / 12,
		Months: months % 12,
		Days:   daysBetween(anchor, termination),
	}
}

// DaysWorkedInCalendarYear counts the days worked in the termination year,
// termination day included.
func DaysWorkedInCalendarYear(hire, termination time.Time) int {
	hire = dateOnly(hire)
	termination = dateOnly(termination)
	start := time.Date(termination.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if hire.After(start) {
		start = hire
	}
	if termination.Before(start) {
		return 0
	}
	return min(daysBetween(start, termination)+1, 365)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + months
	year := y + total/12
	month := time.Month(total%12 + 1)
	if last := daysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

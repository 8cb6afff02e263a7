package severance

// vacationSchedule holds the annual vacation entitlement per year of service
// after the 2023 LFT reform (art. 76).
var vacationSchedule = []struct {
	FromYear int
	ToYear   int
	Days     int
}{
	{1, 1, 12},
	{2, 2, 14},
	{3, 3, 16},
	{4, 4, 18},
	{5, 5, 20},
	{6, 10, 22},
	{11, 15, 24},
	{16, 20, 26},
	{21, 25, 28},
	{26, 30, 30},
	{31, 35, 32},
}

// VacationDaysForYear returns the vacation days owed for the given year of
// service (1-based). Past the table, entitlement keeps growing 2 days every 5 years.
func VacationDaysForYear(year int) int {
	if year <= 0 {
		return 0
	}
	for _, row := range vacationSchedule {
		if year >= row.FromYear && year <= row.ToYear {
			return row.Days
		}
	}
	last := vacationSchedule[len(vacationSchedule)-1]
	return last.Days + 2*((year-last.FromYear)/5)
}

// owedVacationDays sums the entitlement of the most recent pendingYears
// completed years of service.
func owedVacationDays(completedYears, pendingYears int) int {
	total := 0
	for year := completedYears - pendingYears + 1; year <= completedYears; year++ {
		total += VacationDaysForYear(year)
	}
	return total
}

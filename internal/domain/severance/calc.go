package severance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ComputeSeverance builds the conciliation and litigation breakdowns for an
// employment record. It has no side effects and returns identical output for
// identical input.
func ComputeSeverance(record EmploymentRecord) (Breakdown, error) {
	hire := dateOnly(record.HireDate)
	termination := dateOnly(record.TerminationDate)
	if record.HireDate.IsZero() || record.TerminationDate.IsZero() || !termination.After(hire) {
		return Breakdown{}, ErrInvalidDateRange
	}
	daily := record.EffectiveDailySalary()
	if !daily.IsPositive() {
		return Breakdown{}, ErrInvalidSalary
	}
	if !record.TerminationType.Valid() {
		return Breakdown{}, fmt.Errorf("%w: %q", ErrUnknownTerminationType, record.TerminationType)
	}

	l := &ledger{}
	tenure := ComputeTenure(hire, termination)
	years := tenureYears(tenure)
	dismissed := record.TerminationType == TerminationUnjustifiedDismissal

	constitutional := decimal.Zero
	seniorityIndemnity := decimal.Zero
	if dismissed {
		constitutional = ConstitutionalIndemnityDays.Mul(daily)
		seniorityIndemnity = SeniorityIndemnityDaysPerYr.Mul(daily).Mul(years)
	}

	premiumBase := decimal.Min(daily, SeniorityPremiumWageCap)
	seniorityPremium := premiumBase.Mul(SeniorityPremiumDaysPerYr).Mul(years)

	pending := record.PendingVacationYears
	if pending < 0 {
		l.warn(fmt.Sprintf("pendingVacationYears: %s", WarningNegativeClamped))
		pending = 0
	}
	if pending > tenure.Years {
		l.warn(WarningPendingYearsClamped)
		pending = tenure.Years
	}
	owedDays := decimal.NewFromInt(int64(owedVacationDays(tenure.Years, pending)))
	scheduled := decimal.NewFromInt(int64(VacationDaysForYear(tenure.Years + 1)))
	proratedDays := scheduled.Mul(decimal.NewFromInt(int64(tenure.Months))).Div(MonthsPerYear)
	vacationDays := owedDays.Add(proratedDays)

	workedDays := decimal.NewFromInt(int64(DaysWorkedInCalendarYear(hire, termination)))
	yearEndBonus := YearEndBonusDays.Mul(daily).Mul(workedDays).Div(DaysPerYear)

	conciliation := []Concept{
		l.concept(ConceptConstitutionalIndemnity, constitutional),
		l.concept(ConceptSeniorityIndemnity, seniorityIndemnity),
		l.concept(ConceptSeniorityPremium, seniorityPremium),
		l.concept(ConceptVacation, vacationDays.Mul(daily)),
		l.concept(ConceptVacationPremium, VacationPremiumRate.Mul(vacationDays).Mul(daily)),
		l.concept(ConceptYearEndBonus, yearEndBonus),
		l.concept(ConceptUnpaidWages, record.UnpaidWages),
	}

	evaluation := termination
	if !record.EvaluationDate.IsZero() {
		evaluation = dateOnly(record.EvaluationDate)
	}
	daysSince := daysBetween(termination, evaluation)
	if daysSince < 0 {
		l.warn(WarningEvaluationBeforeExit)
		daysSince = 0
	}
	backPay := daily.Mul(decimal.NewFromInt(int64(min(daysSince, BackPayCapDays))))

	litigation := make([]Concept, 0, len(conciliation)+4)
	litigation = append(litigation, conciliation...)
	litigation = append(litigation,
		l.concept(ConceptBackPayDuringTrial, backPay),
		l.concept(ConceptOvertime, record.UnpaidOvertime),
		l.concept(ConceptSundayPremium, record.SundayPremium),
		l.concept(ConceptHolidayPay, record.HolidayPay),
	)

	breakdown := Breakdown{
		TerminationType: record.TerminationType,
		Tenure:          tenure,
		TenureYears:     years.Round(4),
		DailySalary:     daily.Round(currencyScale),
		VacationDays:    vacationDays.Round(currencyScale),
		Conciliation:    buildScenario(conciliation, ConciliationFeeRate),
		Litigation:      buildScenario(litigation, LitigationFeeRate),
		Warnings:        l.warnings,
	}
	breakdown.Delta = breakdown.Litigation.NetTotal.Sub(breakdown.Conciliation.NetTotal)
	if !breakdown.Conciliation.NetTotal.IsZero() {
		pct := breakdown.Delta.Div(breakdown.Conciliation.NetTotal).Mul(decimal.NewFromInt(100)).Round(currencyScale)
		breakdown.DeltaPercent = &pct
	}
	return breakdown, nil
}

// tenureYears expresses tenure as fractional years: months count in twelfths
// and remaining days in 365ths.
func tenureYears(t Tenure) decimal.Decimal {
	return decimal.NewFromInt(int64(t.Years)).
		Add(decimal.NewFromInt(int64(t.Months)).Div(MonthsPerYear)).
		Add(decimal.NewFromInt(int64(t.Days)).Div(DaysPerYear))
}

func buildScenario(concepts []Concept, rate decimal.Decimal) Scenario {
	gross := decimal.Zero
	for _, concept := range concepts {
		gross = gross.Add(concept.Amount)
	}
	// Fees are charged in whole cents; net is gross minus the rounded fee.
	fee := gross.Mul(rate).Round(currencyScale)
	return Scenario{
		Concepts:    concepts,
		GrossTotal:  gross,
		FeeRate:     rate,
		AttorneyFee: fee,
		NetTotal:    gross.Sub(fee),
	}
}

type ledger struct {
	warnings []string
}

func (l *ledger) warn(msg string) {
	l.warnings = append(l.warnings, msg)
}

// concept rounds an amount to currency scale and clamps negatives to zero.
func (l *ledger) concept(key string, amount decimal.Decimal) Concept {
	amount = amount.Round(currencyScale)
	if amount.IsNegative() {
		l.warn(fmt.Sprintf("%s: %s", key, WarningNegativeClamped))
		amount = decimal.Zero
	}
	return Concept{Key: key, Label: conceptLabels[key], Amount: amount}
}

package severance

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentRecord struct {
	HireDate             time.Time       `json:"hireDate"`
	TerminationDate      time.Time       `json:"terminationDate"`
	DailySalary          decimal.Decimal `json:"dailySalary"`
	MonthlySalary        decimal.Decimal `json:"monthlySalary"`
	TerminationType      TerminationType `json:"terminationType"`
	UnpaidWages          decimal.Decimal `json:"unpaidWages"`
	UnpaidOvertime       decimal.Decimal `json:"unpaidOvertime"`
	SundayPremium        decimal.Decimal `json:"sundayPremium"`
	HolidayPay           decimal.Decimal `json:"holidayPay"`
	PendingVacationYears int             `json:"pendingVacationYears"`
	EvaluationDate       time.Time       `json:"evaluationDate"`
}

// EffectiveDailySalary returns the daily salary, deriving it from the monthly
// salary when no daily figure was supplied.
func (r EmploymentRecord) EffectiveDailySalary() decimal.Decimal {
	if !r.DailySalary.IsZero() {
		return r.DailySalary
	}
	return r.MonthlySalary.Div(DaysPerMonth)
}

type Tenure struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

type Concept struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type Scenario struct {
	Concepts    []Concept       `json:"concepts"`
	GrossTotal  decimal.Decimal `json:"grossTotal"`
	FeeRate     decimal.Decimal `json:"feeRate"`
	AttorneyFee decimal.Decimal `json:"attorneyFee"`
	NetTotal    decimal.Decimal `json:"netTotal"`
}

// Amount returns the amount of the named concept and whether it is present.
func (s Scenario) Amount(key string) (decimal.Decimal, bool) {
	for _, concept := range s.Concepts {
		if concept.Key == key {
			return concept.Amount, true
		}
	}
	return decimal.Zero, false
}

type Breakdown struct {
	TerminationType TerminationType  `json:"terminationType"`
	Tenure          Tenure           `json:"tenure"`
	TenureYears     decimal.Decimal  `json:"tenureYears"`
	DailySalary     decimal.Decimal  `json:"dailySalary"`
	VacationDays    decimal.Decimal  `json:"vacationDays"`
	Conciliation    Scenario         `json:"conciliation"`
	Litigation      Scenario         `json:"litigation"`
	Delta           decimal.Decimal  `json:"delta"`
	DeltaPercent    *decimal.Decimal `json:"deltaPercent"`
	Warnings        []string         `json:"warnings,omitempty"`
}

type Calculation struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId,omitempty"`
	Input     EmploymentRecord `json:"input"`
	Breakdown Breakdown        `json:"breakdown"`
	CreatedAt time.Time        `json:"createdAt"`
}

type CalculationSummary struct {
	ID              string          `json:"id"`
	TerminationType TerminationType `json:"terminationType"`
	ConciliationNet decimal.Decimal `json:"conciliationNet"`
	LitigationNet   decimal.Decimal `json:"litigationNet"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type Actor struct {
	TenantID  string
	UserID    string
	RequestID string
	IP        string
}

func (a Actor) Authenticated() bool {
	return a.TenantID != "" && a.UserID != ""
}

type ReportMeta struct {
	ClientName  string
	CaseRef     string
	GeneratedAt time.Time
}

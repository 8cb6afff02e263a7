package severance

import "github.com/shopspring/decimal"

type TerminationType string

const (
	TerminationUnjustifiedDismissal TerminationType = "unjustified_dismissal"
	TerminationJustifiedResignation TerminationType = "justified_resignation"
	TerminationVoluntary            TerminationType = "voluntary_termination"
	TerminationOther                TerminationType = "other"
)

var TerminationTypes = []TerminationType{
	TerminationUnjustifiedDismissal,
	TerminationJustifiedResignation,
	TerminationVoluntary,
	TerminationOther,
}

func (t TerminationType) Valid() bool {
	for _, candidate := range TerminationTypes {
		if t == candidate {
			return true
		}
	}
	return false
}

const (
	ConceptConstitutionalIndemnity = "indemnizacion_constitucional"
	ConceptSeniorityIndemnity      = "indemnizacion_20_dias"
	ConceptSeniorityPremium        = "prima_antiguedad"
	ConceptVacation                = "vacaciones"
	ConceptVacationPremium         = "prima_vacacional"
	ConceptYearEndBonus            = "aguinaldo"
	ConceptUnpaidWages             = "salarios_devengados"
	ConceptBackPayDuringTrial      = "salarios_caidos"
	ConceptOvertime                = "horas_extra"
	ConceptSundayPremium           = "prima_dominical"
	ConceptHolidayPay              = "dias_festivos"
)

var conceptLabels = map[string]string{
	ConceptConstitutionalIndemnity: "Indemnización constitucional (3 meses)",
	ConceptSeniorityIndemnity:      "Indemnización 20 días por año",
	ConceptSeniorityPremium:        "Prima de antigüedad",
	ConceptVacation:                "Vacaciones",
	ConceptVacationPremium:         "Prima vacacional",
	ConceptYearEndBonus:            "Aguinaldo proporcional",
	ConceptUnpaidWages:             "Salarios devengados",
	ConceptBackPayDuringTrial:      "Salarios caídos",
	ConceptOvertime:                "Horas extra",
	ConceptSundayPremium:           "Prima dominical",
	ConceptHolidayPay:              "Días festivos",
}

// Statutory multipliers (LFT arts. 48, 50, 76, 80, 87, 162).
var (
	ConstitutionalIndemnityDays = decimal.NewFromInt(90)
	SeniorityIndemnityDaysPerYr = decimal.NewFromInt(20)
	SeniorityPremiumDaysPerYr   = decimal.NewFromInt(12)
	YearEndBonusDays            = decimal.NewFromInt(15)
	VacationPremiumRate         = decimal.RequireFromString("0.25")
	DaysPerMonth                = decimal.NewFromInt(30)
	DaysPerYear                 = decimal.NewFromInt(365)
	MonthsPerYear               = decimal.NewFromInt(12)

	// DailyMinimumWage is the general daily minimum wage reference (MXN, 2024).
	DailyMinimumWage        = decimal.RequireFromString("248.93")
	SeniorityPremiumWageCap = DailyMinimumWage.Mul(decimal.NewFromInt(2))

	ConciliationFeeRate = decimal.RequireFromString("0.25")
	LitigationFeeRate   = decimal.RequireFromString("0.35")
)

// BackPayCapDays caps salarios caídos at twelve months.
const BackPayCapDays = 365

const currencyScale = 2

const (
	WarningNegativeClamped      = "negative amount clamped to zero"
	WarningEvaluationBeforeExit = "evaluation date precedes termination date; back pay during trial set to zero"
	WarningPendingYearsClamped  = "pending vacation years exceed completed years of service"
)

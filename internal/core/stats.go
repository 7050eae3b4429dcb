package core

import "time"

const (
	AdviceGood     AdviceStatus = "good"
	AdviceWarning  AdviceStatus = "warning"
	AdviceCritical AdviceStatus = "critical"
)

type (
	// BudgetStats is a derived snapshot. It is never stored; it is always
	// recomputed from base income, fixed expenses and transactions.
	BudgetStats struct {
		BaseIncome     Money
		VariableIncome Money
		TotalIncome    Money
		FixedNeeds     Money
		VariableNeeds  Money
		TotalNeeds     Money
		Wants          Money // variable only
		FixedWants     Money
		Savings        Money
		DebtInterest   Money
		DebtNoInterest Money
		FixedDebts     Money
		TotalSpent     Money
	}

	AdviceStatus string

	// AIAdvice is produced by the advisory service and displayed as-is.
	AIAdvice struct {
		Status          AdviceStatus `json:"status"`
		Message         string       `json:"message"`
		Recommendations []string     `json:"recommendations"`
	}

	// ForecastPoint is one day of the cash-flow projection.
	ForecastPoint struct {
		Date    time.Time
		Label   string
		Balance Money // floored at zero
	}
)

// Balance is total income minus total spent. It may be negative.
func (s BudgetStats) Balance() Money {
	return s.TotalIncome.Sub(s.TotalSpent)
}

// FixedPerMonth is the sum of every fixed obligation applied on payday.
func (s BudgetStats) FixedPerMonth() Money {
	return s.FixedNeeds.Add(s.FixedWants).Add(s.FixedDebts)
}

// Overspent reports whether spending exceeds income. This is a valid state.
func (s BudgetStats) Overspent() bool {
	return s.TotalSpent.GreaterThan(s.TotalIncome)
}

// ActiveDebts is the variable debt spent this period.
func (s BudgetStats) ActiveDebts() Money {
	return s.DebtInterest.Add(s.DebtNoInterest)
}

func (a AdviceStatus) IsValid() bool {
	switch a {
	case AdviceGood, AdviceWarning, AdviceCritical:
		return true
	default:
		return false
	}
}

// Package budget holds the pure 50/30/20 computations: aggregation of
// transactions and fixed expenses into BudgetStats, the cash-flow forecast
// and the allocation buckets. Nothing here owns state or performs IO.
package budget

import "finmo/internal/core"

// Aggregate computes BudgetStats from the base income, the fixed monthly
// obligations and the ad-hoc transactions. It is total: values outside the
// known category sets are skipped.
//
// InterestAmount is never added on its own; it is already part of Amount.
func Aggregate(baseIncome core.Money, fixed []core.FixedExpense, txs []core.Transaction) core.BudgetStats {
	s := core.BudgetStats{BaseIncome: baseIncome}

	for _, fe := range fixed {
		if bucket := fixedBucket(&s, fe.Category); bucket != nil {
			*bucket = bucket.Add(fe.Amount)
		}
	}

	for _, t := range txs {
		if bucket := transactionBucket(&s, t.Category); bucket != nil {
			*bucket = bucket.Add(t.Amount)
		}
	}

	s.TotalIncome = s.BaseIncome.Add(s.VariableIncome)
	s.TotalNeeds = s.FixedNeeds.Add(s.VariableNeeds)
	s.TotalSpent = s.TotalNeeds.
		Add(s.Wants).
		Add(s.FixedWants).
		Add(s.Savings).
		Add(s.DebtInterest).
		Add(s.DebtNoInterest).
		Add(s.FixedDebts)

	return s
}

func fixedBucket(s *core.BudgetStats, c core.FixedCategory) *core.Money {
	switch c {
	case core.FixedNeed:
		return &s.FixedNeeds
	case core.FixedWant:
		return &s.FixedWants
	case core.FixedDebtNoInterest:
		return &s.FixedDebts
	default:
		return nil
	}
}

func transactionBucket(s *core.BudgetStats, c core.CategoryType) *core.Money {
	switch c {
	case core.Income:
		return &s.VariableIncome
	case core.Need:
		return &s.VariableNeeds
	case core.Want:
		return &s.Wants
	case core.Saving:
		return &s.Savings
	case core.DebtInterest:
		return &s.DebtInterest
	case core.DebtNoInterest:
		return &s.DebtNoInterest
	default:
		return nil
	}
}

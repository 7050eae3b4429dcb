package budget

import "finmo/internal/core"

const (
	Essentials BucketKind = "essentials"
	Wants      BucketKind = "wants"
	Reserve    BucketKind = "reserve"
)

type (
	BucketKind string

	// Bucket is one leg of the 50/30/20 rule measured against total income.
	Bucket struct {
		Kind          BucketKind
		Label         string
		TargetPercent int64
		Target        core.Money
		Spent         core.Money
		Fixed         core.Money // share of Spent that comes from fixed expenses
	}
)

// Allocate splits the stats into the essentials (50%), wants (30%) and
// reserve (20%) buckets. Debts count as essentials.
func Allocate(s core.BudgetStats) []Bucket {
	return []Bucket{
		{
			Kind:          Essentials,
			Label:         "Essenciais*",
			TargetPercent: 50,
			Target:        s.TotalIncome.Percent(50),
			Spent:         s.TotalNeeds.Add(s.DebtInterest).Add(s.DebtNoInterest).Add(s.FixedDebts),
			Fixed:         s.FixedNeeds.Add(s.FixedDebts),
		},
		{
			Kind:          Wants,
			Label:         "Desejos",
			TargetPercent: 30,
			Target:        s.TotalIncome.Percent(30),
			Spent:         s.Wants.Add(s.FixedWants),
			Fixed:         s.FixedWants,
		},
		{
			Kind:          Reserve,
			Label:         "Reserva",
			TargetPercent: 20,
			Target:        s.TotalIncome.Percent(20),
			Spent:         s.Savings,
		},
	}
}

// Over reports whether the bucket spent more than its target.
func (b Bucket) Over() bool {
	return b.Spent.GreaterThan(b.Target)
}

// FixedProgress is the fixed share as a percentage of target, capped at 100.
func (b Bucket) FixedProgress() float64 {
	return progress(b.Fixed, b.Target)
}

// VariableProgress is the non-fixed share as a percentage of target, capped at 100.
func (b Bucket) VariableProgress() float64 {
	return progress(b.Spent.Sub(b.Fixed), b.Target)
}

func progress(part, target core.Money) float64 {
	denom := target.Cents
	if denom == 0 {
		denom = 1
	}
	p := float64(part.Cents) * 100 / float64(denom)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

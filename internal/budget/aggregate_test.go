package budget

import (
	"testing"

	"finmo/internal/core"
)

func mt(units int64) core.Money { return core.Cents(units * 100) }

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(core.Money{}, nil, nil)
	if s != (core.BudgetStats{}) {
		t.Fatalf("expected zero stats, got %+v", s)
	}
	if s.Balance().Cents != 0 {
		t.Fatalf("balance = %d", s.Balance().Cents)
	}
}

func TestAggregateTotalNeedsIncludesFixed(t *testing.T) {
	fixed := []core.FixedExpense{{ID: "f1", Description: "Renda", Amount: mt(200), Category: core.FixedNeed}}
	txs := []core.Transaction{{ID: "t1", Description: "Mercado", Amount: mt(500), Category: core.Need}}

	s := Aggregate(core.Money{}, fixed, txs)
	if s.TotalNeeds != mt(700) {
		t.Fatalf("totalNeeds = %s", s.TotalNeeds)
	}
	if s.FixedNeeds != mt(200) || s.VariableNeeds != mt(500) {
		t.Fatalf("unexpected split: %+v", s)
	}
}

func TestAggregateBuckets(t *testing.T) {
	interest := mt(50)
	fixed := []core.FixedExpense{
		{ID: "f1", Description: "Renda", Amount: mt(10000), Category: core.FixedNeed},
		{ID: "f2", Description: "Ginásio", Amount: mt(2000), Category: core.FixedWant},
		{ID: "f3", Description: "Crédito carro", Amount: mt(3000), Category: core.FixedDebtNoInterest},
	}
	txs := []core.Transaction{
		{ID: "t1", Description: "Biscate", Amount: mt(5000), Category: core.Income},
		{ID: "t2", Description: "Mercado", Amount: mt(1000), Category: core.Need},
		{ID: "t3", Description: "Cinema", Amount: mt(300), Category: core.Want},
		{ID: "t4", Description: "Poupança", Amount: mt(4000), Category: core.Saving},
		{ID: "t5", Description: "Agiota", Amount: mt(600), InterestAmount: &interest, Category: core.DebtInterest},
		{ID: "t6", Description: "Amigo", Amount: mt(400), Category: core.DebtNoInterest},
		{ID: "t7", Description: "?", Amount: mt(999), Category: core.CategoryType("BOGUS")},
	}

	s := Aggregate(mt(30000), fixed, txs)

	checks := []struct {
		name string
		got  core.Money
		want core.Money
	}{
		{"baseIncome", s.BaseIncome, mt(30000)},
		{"variableIncome", s.VariableIncome, mt(5000)},
		{"totalIncome", s.TotalIncome, mt(35000)},
		{"totalNeeds", s.TotalNeeds, mt(11000)},
		{"wants", s.Wants, mt(300)},
		{"fixedWants", s.FixedWants, mt(2000)},
		{"savings", s.Savings, mt(4000)},
		{"debtInterest", s.DebtInterest, mt(600)}, // interest is not added twice
		{"debtNoInterest", s.DebtNoInterest, mt(400)},
		{"fixedDebts", s.FixedDebts, mt(3000)},
		{"totalSpent", s.TotalSpent, mt(11000 + 300 + 2000 + 4000 + 600 + 400 + 3000)},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
	if s.Balance() != s.TotalIncome.Sub(s.TotalSpent) {
		t.Fatalf("balance mismatch")
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	fixed := []core.FixedExpense{{ID: "f1", Description: "Renda", Amount: mt(100), Category: core.FixedWant}}
	txs := []core.Transaction{{ID: "t1", Description: "x", Amount: mt(7), Category: core.Want}}
	a := Aggregate(mt(10), fixed, txs)
	b := Aggregate(mt(10), fixed, txs)
	if a != b {
		t.Fatalf("aggregate is not deterministic: %+v vs %+v", a, b)
	}
}

func TestAggregateOverspentIsValid(t *testing.T) {
	txs := []core.Transaction{{ID: "t1", Description: "x", Amount: mt(500), Category: core.Want}}
	s := Aggregate(mt(100), nil, txs)
	if !s.Overspent() || !s.Balance().IsNegative() {
		t.Fatalf("expected overspent state, got %+v", s)
	}
}

func TestAllocate(t *testing.T) {
	s := core.BudgetStats{
		TotalIncome:    mt(1000),
		FixedNeeds:     mt(200),
		TotalNeeds:     mt(300),
		DebtInterest:   mt(100),
		DebtNoInterest: mt(50),
		FixedDebts:     mt(100),
		Wants:          mt(100),
		FixedWants:     mt(250),
		Savings:        mt(100),
	}
	buckets := Allocate(s)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}

	ess, wants, reserve := buckets[0], buckets[1], buckets[2]
	if ess.Target != mt(500) || wants.Target != mt(300) || reserve.Target != mt(200) {
		t.Fatalf("unexpected targets: %s %s %s", ess.Target, wants.Target, reserve.Target)
	}
	if ess.Spent != mt(550) || !ess.Over() {
		t.Fatalf("essentials spent = %s over=%v", ess.Spent, ess.Over())
	}
	if ess.Fixed != mt(300) {
		t.Fatalf("essentials fixed = %s", ess.Fixed)
	}
	if wants.Spent != mt(350) || !wants.Over() || wants.Fixed != mt(250) {
		t.Fatalf("wants = %+v", wants)
	}
	if reserve.Over() || reserve.Fixed.Cents != 0 {
		t.Fatalf("reserve = %+v", reserve)
	}
	if got := ess.FixedProgress(); got != 60 {
		t.Fatalf("fixed progress = %v", got)
	}
	if got := ess.VariableProgress(); got != 50 {
		t.Fatalf("variable progress = %v", got)
	}
}

func TestAllocateZeroIncome(t *testing.T) {
	s := core.BudgetStats{FixedWants: mt(10), Wants: mt(0)}
	wants := Allocate(s)[1]
	if !wants.Over() {
		t.Fatalf("any spending over a zero target is over budget")
	}
	if got := wants.FixedProgress(); got != 100 {
		t.Fatalf("progress must be capped at 100, got %v", got)
	}
}

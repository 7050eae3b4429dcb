package tui

import (
	"strings"
	"testing"

	"finmo/internal/budget"
	"finmo/internal/core"
)

func TestFilterTransactions(t *testing.T) {
	txs := []core.Transaction{
		{ID: "1", Description: "Supermercado Shoprite", Subcategory: "Supermercado"},
		{ID: "2", Description: "Cinema", Subcategory: "Lazer & Diversão"},
		{ID: "3", Description: "Chapa", Subcategory: "Transporte"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3"}},
		{"  ", []string{"1", "2", "3"}},
		{"shop", []string{"1"}},
		{"CINE", []string{"2"}},
		{"lazer", []string{"2"}},
		{"trnsp", []string{"3"}},
		{"xyz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := filterTransactions(txs, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.want))
			}
			for i, tx := range got {
				if tx.ID != tt.want[i] {
					t.Fatalf("row %d = %s, want %s", i, tx.ID, tt.want[i])
				}
			}
		})
	}
}

func TestFormCategories(t *testing.T) {
	if got := formCategories(formIncome); len(got) != 1 || got[0] != core.Income {
		t.Fatalf("income categories = %v", got)
	}
	fixed := formCategories(formFixed)
	for _, c := range fixed {
		if _, ok := c.Fixed(); !ok {
			t.Fatalf("%s is not a fixed category", c)
		}
	}
	if fixed[0] != core.Need {
		t.Fatalf("fixed form should default to NEED, got %s", fixed[0])
	}
	for _, c := range formCategories(formExpense) {
		if c == core.Income {
			t.Fatalf("expense form offers INCOME")
		}
	}
}

func TestTransactionColumns(t *testing.T) {
	due := core.NewDate(2025, 11, 10)
	interest := core.Cents(2000)
	tx := core.Transaction{
		Description:    "Prestação [carro]",
		Amount:         core.Cents(10000),
		Category:       core.DebtInterest,
		Subcategory:    "Cartão de Crédito",
		InterestAmount: &interest,
		DueDate:        &due,
	}

	cols := transactionColumns(tx, "MT")
	if len(cols) != 5 {
		t.Fatalf("columns = %d", len(cols))
	}
	if !strings.Contains(cols[3], "vence 10/11") || !strings.Contains(cols[3], "juros") {
		t.Fatalf("details = %q", cols[3])
	}
	if !strings.HasPrefix(cols[4], "- ") {
		t.Fatalf("debt amount should be negative, got %q", cols[4])
	}
	if strings.Contains(cols[1], "[carro]") {
		t.Fatalf("description not escaped: %q", cols[1])
	}

	tx.Category = core.Income
	if got := signedAmount(tx, "MT"); !strings.HasPrefix(got, "+ ") {
		t.Fatalf("income amount = %q", got)
	}
}

func TestProgressBarWidth(t *testing.T) {
	b := budget.Bucket{
		Target: core.Cents(10000),
		Spent:  core.Cents(15000),
		Fixed:  core.Cents(8000),
	}
	bar := progressBar(b, 10, "#fff")
	cells := strings.Count(bar, "█") + strings.Count(bar, "▓") + strings.Count(bar, "░")
	if cells != 10 {
		t.Fatalf("bar has %d cells: %q", cells, bar)
	}
	if strings.Count(bar, "█") != 8 {
		t.Fatalf("fixed share = %d cells", strings.Count(bar, "█"))
	}
	if progressBar(b, 0, "#fff") != "" {
		t.Fatalf("zero width should render nothing")
	}
}

func TestAdviceText(t *testing.T) {
	if !strings.Contains(adviceText(nil, true), "analisar") {
		t.Fatalf("loading text missing")
	}
	if !strings.Contains(adviceText(nil, false), "mentoria") {
		t.Fatalf("empty text missing")
	}

	a := core.AIAdvice{Status: core.AdviceCritical, Message: "Corte gastos", Recommendations: []string{"a", "b"}}
	got := adviceText(&a, false)
	if !strings.Contains(got, "[red::b]CRITICAL") || strings.Count(got, "•") != 2 {
		t.Fatalf("advice text = %q", got)
	}
}

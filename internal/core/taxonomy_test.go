package core

import (
	"testing"
	"time"
)

func TestDefaultTaxonomy(t *testing.T) {
	tax := DefaultTaxonomy()
	for _, c := range Categories() {
		if len(tax.Subcategories(c)) == 0 {
			t.Fatalf("%s has no subcategories", c)
		}
		if tax.Label(c) == string(c) {
			t.Fatalf("%s has no label", c)
		}
	}
	if got := tax.DefaultSubcategory(Need); got != "Moradia" {
		t.Fatalf("default NEED subcategory = %q", got)
	}
	if !tax.HasSubcategory(DebtInterest, "Microcrédito") {
		t.Fatalf("expected Microcrédito under DEBT_INTEREST")
	}
	if tax.HasSubcategory(Want, "Moradia") {
		t.Fatalf("Moradia must not belong to WANT")
	}
}

func TestDayLabel(t *testing.T) {
	got := DefaultTaxonomy().DayLabel(time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC))
	if got != "05 out" {
		t.Fatalf("label = %q", got)
	}
}

func TestParseTaxonomyRejectsIncomplete(t *testing.T) {
	doc := []byte(`
categories:
  - type: NEED
    label: x
    subcategories: [a]
months: [jan, fev, mar, abr, mai, jun, jul, ago, set, out, nov, dez]
`)
	if _, err := ParseTaxonomy(doc); err == nil {
		t.Fatalf("expected error for missing categories")
	}
}

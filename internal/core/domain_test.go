package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		ID:          "tx-1",
		Description: "Renda",
		Amount:      Money{Cents: 1500000},
		Category:    Need,
		Subcategory: "Moradia",
		CreatedAt:   time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestTransactionValidate(t *testing.T) {
	if err := validTransaction().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	zero := validTransaction()
	zero.Amount = Money{}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount should be valid, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"missing id", func(tx *Transaction) { tx.ID = " " }, ErrMissingID},
		{"empty description", func(tx *Transaction) { tx.Description = "" }, ErrEmptyDescription},
		{"long description", func(tx *Transaction) { tx.Description = strings.Repeat("a", MaxDescriptionLength+1) }, ErrDescriptionTooLong},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -1} }, ErrInvalidAmount},
		{"negative interest", func(tx *Transaction) { tx.InterestAmount = &Money{Cents: -5} }, ErrInvalidAmount},
		{"unknown category", func(tx *Transaction) { tx.Category = "LOTTERY" }, ErrInvalidCategory},
		{"foreign subcategory", func(tx *Transaction) { tx.Subcategory = "Freelance" }, ErrInvalidSubcategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFixedExpenseValidate(t *testing.T) {
	fe := FixedExpense{ID: "fe-1", Description: "Aluguer", Amount: Money{Cents: 100}, Category: FixedNeed}
	if err := fe.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	fe.Category = FixedCategory(Income)
	if err := fe.Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("income must not be a fixed category, got %v", err)
	}
}

func TestCategoryNarrowing(t *testing.T) {
	for _, c := range Categories() {
		_, ok := c.Fixed()
		want := c == Need || c == Want || c == DebtNoInterest
		if ok != want {
			t.Fatalf("%s: Fixed() ok=%v, want %v", c, ok, want)
		}
	}
	if !DebtInterest.IsDebt() || !DebtNoInterest.IsDebt() || Need.IsDebt() {
		t.Fatalf("IsDebt mismatch")
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" saving ")
	if err != nil || c != Saving {
		t.Fatalf("expected SAVING, got %q (err=%v)", c, err)
	}
	if _, err := ParseCategory("bogus"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestFixedCategoryRejectsIncomeOnDecode(t *testing.T) {
	var fe FixedExpense
	err := json.Unmarshal([]byte(`{"id":"a","description":"x","amount":1,"category":"INCOME"}`), &fe)
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestTransactionDecodesStoredShape(t *testing.T) {
	raw := `{"id":"k2j3","description":"Cartão","amount":1250.5,"interestAmount":50,
		"category":"DEBT_INTEREST","subcategory":"Cartão de Crédito",
		"date":"2025-03-04T10:11:12.000Z","dueDate":"2025-03-20"}`
	var tx Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tx.Amount.Cents != 125050 {
		t.Fatalf("amount cents = %d", tx.Amount.Cents)
	}
	if tx.InterestAmount == nil || tx.InterestAmount.Cents != 5000 {
		t.Fatalf("interest = %v", tx.InterestAmount)
	}
	if tx.DueDate == nil || tx.DueDate.String() != "2025-03-20" {
		t.Fatalf("due date = %v", tx.DueDate)
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("decoded transaction invalid: %v", err)
	}
}

func TestUserIsZero(t *testing.T) {
	if !(User{}).IsZero() {
		t.Fatalf("empty user should be zero")
	}
	if (User{Email: "a@b.c"}).IsZero() {
		t.Fatalf("user with email is not zero")
	}
}

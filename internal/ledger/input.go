package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"finmo/internal/core"
)

var (
	ErrMissingDescription = errors.New("description is required")
	ErrMissingAmount      = errors.New("amount is required")
)

// TransactionInput is the raw form data for a new transaction.
type TransactionInput struct {
	Description    string
	Amount         string
	Category       core.CategoryType
	Subcategory    string // first entry of the category when empty
	InterestAmount string // DEBT_INTEREST only
	DueDate        string // YYYY-MM-DD, debt categories only
}

// FixedExpenseInput is the raw form data for a new fixed expense.
type FixedExpenseInput struct {
	Description string
	Amount      string
	Category    core.FixedCategory
}

// build turns the input into a validated transaction. Fields that do not
// apply to the category are dropped.
func (in TransactionInput) build(id string, now time.Time) (core.Transaction, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return core.Transaction{}, ErrMissingDescription
	}
	if strings.TrimSpace(in.Amount) == "" {
		return core.Transaction{}, ErrMissingAmount
	}

	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	if !in.Category.IsValid() {
		return core.Transaction{}, fmt.Errorf("%w: %q", core.ErrInvalidCategory, in.Category)
	}

	sub := strings.TrimSpace(in.Subcategory)
	if sub == "" {
		sub = core.DefaultTaxonomy().DefaultSubcategory(in.Category)
	}

	t := core.Transaction{
		ID:          id,
		Description: desc,
		Amount:      amount,
		Category:    in.Category,
		Subcategory: sub,
		CreatedAt:   now,
	}

	if in.Category == core.DebtInterest && strings.TrimSpace(in.InterestAmount) != "" {
		interest, err := core.ParseAmount(in.InterestAmount)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("interest: %w", err)
		}
		t.InterestAmount = &interest
	}

	if in.Category.IsDebt() && strings.TrimSpace(in.DueDate) != "" {
		due, err := core.ParseDate(in.DueDate)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("due date: %w", err)
		}
		t.DueDate = &due
	}

	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func (in FixedExpenseInput) build(id string) (core.FixedExpense, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return core.FixedExpense{}, ErrMissingDescription
	}
	if strings.TrimSpace(in.Amount) == "" {
		return core.FixedExpense{}, ErrMissingAmount
	}

	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.FixedExpense{}, fmt.Errorf("amount: %w", err)
	}

	fe := core.FixedExpense{
		ID:          id,
		Description: desc,
		Amount:      amount,
		Category:    in.Category,
	}
	if err := fe.Validate(); err != nil {
		return core.FixedExpense{}, err
	}
	return fe, nil
}

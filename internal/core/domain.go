package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Need           CategoryType = "NEED"
	Want           CategoryType = "WANT"
	Saving         CategoryType = "SAVING"
	DebtInterest   CategoryType = "DEBT_INTEREST"
	DebtNoInterest CategoryType = "DEBT_NO_INTEREST"
	Income         CategoryType = "INCOME"
)

const (
	FixedNeed           FixedCategory = FixedCategory(Need)
	FixedWant           FixedCategory = FixedCategory(Want)
	FixedDebtNoInterest FixedCategory = FixedCategory(DebtNoInterest)
)

// MaxDescriptionLength bounds descriptions of transactions and fixed expenses.
const MaxDescriptionLength = 200

type (
	// CategoryType is the closed set of categories a transaction can carry.
	CategoryType string

	// FixedCategory is the narrower set allowed on a fixed expense. Income
	// and interest-bearing debt are never fixed.
	FixedCategory string

	Date struct {
		time.Time
	}

	Transaction struct {
		ID             string       `json:"id"`
		Description    string       `json:"description"`
		Amount         Money        `json:"amount"`
		InterestAmount *Money       `json:"interestAmount,omitempty"` // informational, part of Amount
		Category       CategoryType `json:"category"`
		Subcategory    string       `json:"subcategory"`
		CreatedAt      time.Time    `json:"date"`
		DueDate        *Date        `json:"dueDate,omitempty"` // debt categories only
	}

	FixedExpense struct {
		ID          string        `json:"id"`
		Description string        `json:"description"`
		Amount      Money         `json:"amount"`
		Category    FixedCategory `json:"category"`
	}

	// User is the optional signed-in identity. It is opaque to the budget math.
	User struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
)

var (
	ErrMissingID          = errors.New("missing id")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = fmt.Errorf("description too long (max %d characters)", MaxDescriptionLength)
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidSubcategory = errors.New("invalid subcategory")
	ErrInvalidPayday      = errors.New("invalid payday: must be between 1 and 31")
)

// Categories lists every category in display order.
func Categories() []CategoryType {
	return []CategoryType{Need, Want, Saving, DebtInterest, DebtNoInterest, Income}
}

// FixedCategories lists the categories a fixed expense may use.
func FixedCategories() []FixedCategory {
	return []FixedCategory{FixedNeed, FixedWant, FixedDebtNoInterest}
}

func (c CategoryType) String() string {
	return string(c)
}

// IsValid reports whether c is one of the six known categories.
func (c CategoryType) IsValid() bool {
	switch c {
	case Need, Want, Saving, DebtInterest, DebtNoInterest, Income:
		return true
	default:
		return false
	}
}

// IsDebt reports whether c is one of the two debt categories.
func (c CategoryType) IsDebt() bool {
	return c == DebtInterest || c == DebtNoInterest
}

// Fixed narrows c to a FixedCategory when it is allowed on a fixed expense.
func (c CategoryType) Fixed() (FixedCategory, bool) {
	f := FixedCategory(c)
	return f, f.IsValid()
}

// ParseCategory parses the wire name of a category.
func ParseCategory(s string) (CategoryType, error) {
	c := CategoryType(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

func (f FixedCategory) String() string {
	return string(f)
}

func (f FixedCategory) IsValid() bool {
	switch f {
	case FixedNeed, FixedWant, FixedDebtNoInterest:
		return true
	default:
		return false
	}
}

// Category widens f back to the full category set.
func (f FixedCategory) Category() CategoryType {
	return CategoryType(f)
}

// UnmarshalJSON rejects values outside the fixed set so a stored fixed
// expense can never decode as income or interest-bearing debt.
func (f *FixedCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := FixedCategory(s)
	if !v.IsValid() {
		return fmt.Errorf("%w for fixed expense: %q", ErrInvalidCategory, s)
	}
	*f = v
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func validateDescription(desc string) error {
	if len(strings.TrimSpace(desc)) == 0 {
		return ErrEmptyDescription
	}
	if len(desc) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	if err := validateDescription(t.Description); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.InterestAmount != nil {
		if err := t.InterestAmount.Validate(); err != nil {
			return fmt.Errorf("interest: %w", err)
		}
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if !DefaultTaxonomy().HasSubcategory(t.Category, t.Subcategory) {
		return fmt.Errorf("%w %q for %s", ErrInvalidSubcategory, t.Subcategory, t.Category)
	}
	return nil
}

// IsIncome reports whether the transaction adds to variable income.
func (t Transaction) IsIncome() bool {
	return t.Category == Income
}

func (fe FixedExpense) Validate() error {
	if strings.TrimSpace(fe.ID) == "" {
		return ErrMissingID
	}
	if err := validateDescription(fe.Description); err != nil {
		return err
	}
	if err := fe.Amount.Validate(); err != nil {
		return err
	}
	if !fe.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, fe.Category)
	}
	return nil
}

// ValidatePayday checks that day is a day of month in [1,31].
func ValidatePayday(day int) error {
	if day < 1 || day > 31 {
		return ErrInvalidPayday
	}
	return nil
}

// IsZero reports whether no session is present.
func (u User) IsZero() bool {
	return u.Name == "" && u.Email == "" && u.Picture == ""
}

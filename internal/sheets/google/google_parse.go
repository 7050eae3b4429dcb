package google

import (
	"fmt"
	"strings"
	"time"

	"finmo/internal/core"
)

// Column layout of the mirror sheet. Row 1 is the header.
var header = []any{"ID", "Data", "Descrição", "Categoria", "Subcategoria", "Valor", "Juros", "Vencimento"}

const (
	colID = iota
	colDate
	colDescription
	colCategory
	colSubcategory
	colAmount
	colInterest
	colDue
	numCols
)

const rowDateLayout = "2006-01-02 15:04"

// transactionRow renders t as one sheet row. Amounts are written as plain
// decimal strings so USER_ENTERED turns them into numbers. Free-text cells
// go through literalText so they never parse as formulas.
func transactionRow(t core.Transaction) []any {
	row := make([]any, numCols)
	row[colID] = t.ID
	row[colDate] = t.CreatedAt.Format(rowDateLayout)
	row[colDescription] = literalText(t.Description)
	row[colCategory] = core.DefaultTaxonomy().Label(t.Category)
	row[colSubcategory] = literalText(t.Subcategory)
	row[colAmount] = t.Amount.String()
	row[colInterest] = ""
	if t.InterestAmount != nil {
		row[colInterest] = t.InterestAmount.String()
	}
	row[colDue] = ""
	if t.DueDate != nil {
		row[colDue] = t.DueDate.String()
	}
	return row
}

// literalText prefixes an apostrophe to text that USER_ENTERED would
// otherwise evaluate. Sheets stores the rest of the cell as plain text.
func literalText(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '\'':
		return "'" + s
	}
	return s
}

// parseRow reads back the columns that identify a mirrored transaction.
func parseRow(cols []string) (id string, createdAt time.Time, amount core.Money, err error) {
	if len(cols) <= colAmount {
		return "", time.Time{}, core.Money{}, fmt.Errorf("short row: %d columns", len(cols))
	}
	id = strings.TrimSpace(cols[colID])
	if id == "" {
		return "", time.Time{}, core.Money{}, fmt.Errorf("row without id")
	}
	createdAt, err = time.Parse(rowDateLayout, strings.TrimSpace(cols[colDate]))
	if err != nil {
		return "", time.Time{}, core.Money{}, fmt.Errorf("row %s date: %w", id, err)
	}
	amount, err = core.ParseAmount(cols[colAmount])
	if err != nil {
		return "", time.Time{}, core.Money{}, fmt.Errorf("row %s amount: %w", id, err)
	}
	return id, createdAt, amount, nil
}

// idColumn extracts the IDs from a column-A read, skipping the header and
// blank cells. The returned index is the zero-based sheet row of each ID.
func idColumn(values [][]any) (ids []string, rows []int) {
	for i, row := range values {
		if i == 0 || len(row) == 0 {
			continue
		}
		v := strings.TrimSpace(fmt.Sprint(row[0]))
		if v == "" {
			continue
		}
		ids = append(ids, v)
		rows = append(rows, i)
	}
	return ids, rows
}

// findRow returns the zero-based sheet row holding id, or -1.
func findRow(values [][]any, id string) int {
	ids, rows := idColumn(values)
	for i, v := range ids {
		if v == id {
			return rows[i]
		}
	}
	return -1
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

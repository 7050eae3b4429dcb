package tui

import (
	"fmt"
	"strings"

	"finmo/internal/budget"
	"finmo/internal/core"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rivo/tview"
)

// formKind selects which record the add form creates.
type formKind int

const (
	formExpense formKind = iota
	formIncome
	formFixed
)

func (k formKind) String() string {
	switch k {
	case formIncome:
		return "Entrada"
	case formFixed:
		return "Custo fixo"
	default:
		return "Saída"
	}
}

// formCategories lists the categories selectable for k, default first.
func formCategories(k formKind) []core.CategoryType {
	switch k {
	case formIncome:
		return []core.CategoryType{core.Income}
	case formFixed:
		out := make([]core.CategoryType, 0, 3)
		for _, f := range core.FixedCategories() {
			out = append(out, f.Category())
		}
		return out
	default:
		return []core.CategoryType{core.Need, core.Want, core.Saving, core.DebtInterest, core.DebtNoInterest}
	}
}

// filterTransactions keeps transactions whose description or subcategory
// fuzzily contains query. Order is preserved.
func filterTransactions(txs []core.Transaction, query string) []core.Transaction {
	query = strings.TrimSpace(query)
	if query == "" {
		return txs
	}
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if fuzzy.MatchFold(query, t.Description) || fuzzy.MatchFold(query, t.Subcategory) {
			out = append(out, t)
		}
	}
	return out
}

// signedAmount renders an amount with + for income and - otherwise.
func signedAmount(t core.Transaction, currency string) string {
	if t.IsIncome() {
		return "+ " + t.Amount.Format(currency)
	}
	return "- " + t.Amount.Format(currency)
}

// transactionColumns are the cells of one transactions table row.
func transactionColumns(t core.Transaction, currency string) []string {
	details := tview.Escape(t.Subcategory)
	if t.DueDate != nil {
		details += " · vence " + t.DueDate.Format("02/01")
	}
	if t.InterestAmount != nil {
		details += " · juros " + t.InterestAmount.Format(currency)
	}
	return []string{
		t.CreatedAt.Format("02/01 15:04"),
		tview.Escape(t.Description),
		tview.Escape(core.DefaultTaxonomy().Label(t.Category)),
		details,
		signedAmount(t, currency),
	}
}

// progressBar draws the fixed share in the bucket color and the variable
// share lighter, scaled to width cells.
func progressBar(b budget.Bucket, width int, color string) string {
	if width < 1 {
		return ""
	}
	fixed := int(b.FixedProgress() * float64(width) / 100)
	variable := int(b.VariableProgress() * float64(width) / 100)
	if fixed+variable > width {
		variable = width - fixed
	}
	rest := width - fixed - variable

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s]%s", color, strings.Repeat("█", fixed))
	fmt.Fprintf(&sb, "[%s]%s", color, strings.Repeat("▓", variable))
	fmt.Fprintf(&sb, "[gray]%s[-]", strings.Repeat("░", rest))
	return sb.String()
}

func bucketColor(k budget.BucketKind) string {
	tax := core.DefaultTaxonomy()
	switch k {
	case budget.Essentials:
		return tax.Color(core.Need)
	case budget.Wants:
		return tax.Color(core.Want)
	default:
		return tax.Color(core.Saving)
	}
}

// bucketLine renders a bucket as label, bar and spent / target.
func bucketLine(b budget.Bucket, currency string, width int) string {
	over := ""
	if b.Over() {
		over = " [red]acima da meta[-]"
	}
	return fmt.Sprintf("%-12s %s %s / %s%s",
		b.Label,
		progressBar(b, width, bucketColor(b.Kind)),
		b.Spent.Format(currency),
		b.Target.Format(currency),
		over)
}

func adviceColor(s core.AdviceStatus) string {
	switch s {
	case core.AdviceGood:
		return "green"
	case core.AdviceCritical:
		return "red"
	default:
		return "yellow"
	}
}

// adviceText renders the advice panel body.
func adviceText(advice *core.AIAdvice, loading bool) string {
	switch {
	case loading:
		return "[gray]A analisar as suas finanças...[-]"
	case advice == nil:
		return "[gray]Prima [::b]m[::-] para pedir uma mentoria.[-]"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s::b]%s[-::-]\n\n", adviceColor(advice.Status), strings.ToUpper(string(advice.Status)))
	sb.WriteString(tview.Escape(advice.Message))
	sb.WriteString("\n")
	for _, r := range advice.Recommendations {
		sb.WriteString("\n• ")
		sb.WriteString(tview.Escape(r))
	}
	return sb.String()
}

// summaryText renders the totals block of the dashboard.
func summaryText(s core.BudgetStats, daysToPayday int, safe core.Money, currency string) string {
	balanceColor := "green"
	if s.Overspent() {
		balanceColor = "red"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Renda total      %s\n", s.TotalIncome.Format(currency))
	fmt.Fprintf(&sb, "  base           %s\n", s.BaseIncome.Format(currency))
	fmt.Fprintf(&sb, "  variável       %s\n", s.VariableIncome.Format(currency))
	fmt.Fprintf(&sb, "Gasto total      %s\n", s.TotalSpent.Format(currency))
	fmt.Fprintf(&sb, "Dívidas ativas   %s\n", s.ActiveDebts().Format(currency))
	fmt.Fprintf(&sb, "Saldo            [%s]%s[-]\n\n", balanceColor, s.Balance().Format(currency))
	fmt.Fprintf(&sb, "Dias até o salário   %d\n", daysToPayday)
	fmt.Fprintf(&sb, "Pode gastar por dia  %s", safe.Format(currency))
	return sb.String()
}

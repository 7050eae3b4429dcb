package tui

import (
	"strings"

	"finmo/internal/advisor"
	"finmo/internal/ledger"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const barWidth = 20

func (a *App) dashboardPage() *tview.Flex {
	a.summary = tview.NewTextView().SetDynamicColors(true)
	a.summary.SetBorder(true).SetTitle(" Resumo ")

	a.buckets = tview.NewTextView().SetDynamicColors(true)
	a.buckets.SetBorder(true).SetTitle(" Regra 50/30/20 ")

	a.forecast = tview.NewTable().SetFixed(1, 0).SetSelectable(true, false)
	a.forecast.SetBorder(true).SetTitle(" Próximos 30 dias ")

	a.advice = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true)
	a.advice.SetBorder(true).SetTitle(" Mentoria Finmo ")

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.summary, 11, 0, false).
		AddItem(a.buckets, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.forecast, 0, 1, true).
		AddItem(a.advice, 0, 1, false)

	return tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(left, 0, 3, false).
		AddItem(right, 0, 2, true)
}

func (a *App) renderDashboard() {
	today := a.opts.Now()
	cur := a.opts.Currency
	stats := a.ledger.Stats()

	a.summary.SetText(summaryText(stats, a.ledger.DaysUntilPayday(today), a.ledger.SafeToSpendDaily(today), cur))

	lines := make([]string, 0, 4)
	for _, b := range a.ledger.Allocation() {
		lines = append(lines, bucketLine(b, cur, barWidth))
	}
	lines = append(lines, "", "[gray]* inclui dívidas. █ fixo  ▓ variável[-]")
	a.buckets.SetText(strings.Join(lines, "\n"))

	a.forecast.Clear()
	a.forecast.SetCell(0, 0, tview.NewTableCell("[yellow]Dia").SetSelectable(false))
	a.forecast.SetCell(0, 1, tview.NewTableCell("[yellow]Saldo previsto").SetSelectable(false).SetAlign(tview.AlignRight))
	for i, p := range a.ledger.Forecast(today) {
		color := tcell.ColorWhite
		if p.Balance.Cents == 0 {
			color = tcell.ColorRed
		}
		a.forecast.SetCell(i+1, 0, tview.NewTableCell(p.Label))
		a.forecast.SetCell(i+1, 1, tview.NewTableCell(p.Balance.Format(cur)).SetTextColor(color).SetAlign(tview.AlignRight))
	}

	a.renderAdvice()
}

func (a *App) renderAdvice() {
	a.advice.SetText(adviceText(a.lastAdvice, a.adviceLoading))
}

// requestAdvice asks for mentoring on a background goroutine. The reply is
// dropped when the ledger was reset in the meantime.
func (a *App) requestAdvice() {
	if a.adviceLoading {
		return
	}
	a.adviceLoading = true
	a.renderAdvice()

	gen := a.adviceGen
	req := buildAdviceRequest(a.ledger, a.opts.Currency, a.opts.RecentTransactions)
	ctx := a.ctx

	go func() {
		advice := a.advisor.Advise(ctx, req)
		a.app.QueueUpdateDraw(func() {
			if gen != a.adviceGen {
				return
			}
			a.adviceLoading = false
			a.lastAdvice = &advice
			a.renderAdvice()
		})
	}()
}

// clearAdvice forgets shown and in-flight advice.
func (a *App) clearAdvice() {
	a.adviceGen++
	a.adviceLoading = false
	a.lastAdvice = nil
	a.renderAdvice()
}

func buildAdviceRequest(l *ledger.Ledger, currency string, recent int) advisor.Request {
	if recent <= 0 {
		recent = advisor.DefaultRecentTransactions
	}
	stats := l.Stats()
	return advisor.Request{
		Stats:        stats,
		Transactions: l.RecentTransactions(recent),
		TotalIncome:  stats.TotalIncome,
		Currency:     currency,
		Recent:       recent,
	}
}

package tui

import (
	"fmt"

	"finmo/internal/core"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var transactionHeaders = []string{"Data", "Descrição", "Categoria", "Detalhe", "Valor"}

func (a *App) transactionsPage() *tview.Flex {
	a.txFilter = tview.NewInputField().
		SetLabel("Filtrar: ").
		SetFieldBackgroundColor(tcell.NewRGBColor(40, 40, 40)).
		SetChangedFunc(func(string) { a.renderTransactions() }).
		SetDoneFunc(func(tcell.Key) { a.app.SetFocus(a.txTable) })

	a.txTable = tview.NewTable().SetFixed(1, 0).SetSelectable(true, false).SetSeparator(' ')
	a.txTable.SetBorder(true).SetTitle(" Movimentos (Enter apaga, Tab filtra) ")
	a.txTable.SetSelectedFunc(func(row, _ int) {
		if row < 1 || row > len(a.visibleTxs) {
			return
		}
		tx := a.visibleTxs[row-1]
		a.confirm(fmt.Sprintf("Apagar \"%s\"?", tx.Description), func() {
			if a.ledger.DeleteTransaction(a.ctx, tx.ID) {
				a.showStatus("Movimento apagado")
			}
			a.refresh()
		})
	})
	a.txTable.SetInputCapture(func(e *tcell.EventKey) *tcell.EventKey {
		if e.Key() == tcell.KeyTab || e.Key() == tcell.KeyBacktab {
			a.app.SetFocus(a.txFilter)
			return nil
		}
		return e
	})

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.txFilter, 1, 0, true).
		AddItem(a.txTable, 0, 1, false)
}

func (a *App) renderTransactions() {
	a.visibleTxs = filterTransactions(a.ledger.Snapshot().Transactions, a.txFilter.GetText())

	a.txTable.Clear()
	for col, h := range transactionHeaders {
		a.txTable.SetCell(0, col, tview.NewTableCell("[yellow]"+h).SetSelectable(false))
	}
	for i, tx := range a.visibleTxs {
		color := tcell.ColorWhite
		if tx.IsIncome() {
			color = tcell.ColorGreen
		}
		for col, text := range transactionColumns(tx, a.opts.Currency) {
			cell := tview.NewTableCell(text).SetTextColor(color)
			if col == len(transactionHeaders)-1 {
				cell.SetAlign(tview.AlignRight)
			}
			a.txTable.SetCell(i+1, col, cell)
		}
	}
	if len(a.visibleTxs) == 0 {
		a.txTable.SetCell(1, 0, tview.NewTableCell("[gray]Sem movimentos").SetSelectable(false))
	}
}

func (a *App) fixedPage() *tview.Table {
	a.fixedTable = tview.NewTable().SetFixed(1, 0).SetSelectable(true, false)
	a.fixedTable.SetBorder(true).SetTitle(" Custos fixos mensais (Enter remove) ")
	a.fixedTable.SetSelectedFunc(func(row, _ int) {
		fixed := a.ledger.Snapshot().FixedExpenses
		if row < 1 || row > len(fixed) {
			return
		}
		fe := fixed[row-1]
		a.confirm(fmt.Sprintf("Remover \"%s\"?", fe.Description), func() {
			if a.ledger.RemoveFixedExpense(a.ctx, fe.ID) {
				a.showStatus("Custo fixo removido")
			}
			a.refresh()
		})
	})
	return a.fixedTable
}

func (a *App) renderFixed() {
	snap := a.ledger.Snapshot()
	cur := a.opts.Currency

	a.fixedTable.Clear()
	for col, h := range []string{"Descrição", "Categoria", "Valor"} {
		a.fixedTable.SetCell(0, col, tview.NewTableCell("[yellow]"+h).SetSelectable(false))
	}
	for i, fe := range snap.FixedExpenses {
		a.fixedTable.SetCell(i+1, 0, tview.NewTableCell(tview.Escape(fe.Description)))
		a.fixedTable.SetCell(i+1, 1, tview.NewTableCell(tview.Escape(core.DefaultTaxonomy().Label(fe.Category.Category()))))
		a.fixedTable.SetCell(i+1, 2, tview.NewTableCell(fe.Amount.Format(cur)).SetAlign(tview.AlignRight))
	}

	total := a.ledger.Stats().FixedPerMonth()
	row := len(snap.FixedExpenses) + 1
	a.fixedTable.SetCell(row, 0, tview.NewTableCell("[gray]Total por mês").SetSelectable(false))
	a.fixedTable.SetCell(row, 2, tview.NewTableCell(total.Format(cur)).SetSelectable(false).SetAlign(tview.AlignRight))
}

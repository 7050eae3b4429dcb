// Package tui is the terminal front end: a tview application with one page
// per view over a single ledger.
package tui

import (
	"context"
	"fmt"
	"time"

	"finmo/internal/advisor"
	"finmo/internal/core"
	"finmo/internal/ledger"
	"finmo/internal/log"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	PageDashboard    = "Dashboard"
	PageTransactions = "Transactions"
	PageFixed        = "Fixed"
	PageAdd          = "Add"
	PageSettings     = "Settings"
	PagePrompt       = "Prompt"
)

// Options configures the terminal front end.
type Options struct {
	Currency           string
	RecentTransactions int
	Now                func() time.Time
	Logger             *log.Logger
}

type App struct {
	app     *tview.Application
	pages   *tview.Pages
	layout  *tview.Flex
	ledger  *ledger.Ledger
	advisor *advisor.Service
	opts    Options
	logger  *log.Logger
	ctx     context.Context

	nav    *tview.TextView
	status *tview.TextView
	prompt *tview.Modal

	// dashboard
	summary  *tview.TextView
	buckets  *tview.TextView
	forecast *tview.Table
	advice   *tview.TextView

	// advice state, only touched on the UI goroutine
	lastAdvice    *core.AIAdvice
	adviceLoading bool
	adviceGen     int

	// transactions
	txFilter   *tview.InputField
	txTable    *tview.Table
	visibleTxs []core.Transaction

	// fixed expenses
	fixedTable *tview.Table

	// add form
	form        *tview.Form
	formState   formState
	category    *tview.DropDown
	subcategory *tview.DropDown
	interest    *tview.InputField
	dueDate     *tview.InputField

	// settings
	settings     *tview.Form
	settingsInfo *tview.TextView
}

// New builds the application over l. svc provides the mentoring panel.
func New(l *ledger.Ledger, svc *advisor.Service, opts Options) *App {
	if opts.Currency == "" {
		opts.Currency = core.DefaultCurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}

	a := &App{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		ledger:  l,
		advisor: svc,
		opts:    opts,
		logger:  opts.Logger.WithComponent(log.ComponentTUI),
		ctx:     context.Background(),
	}

	a.prompt = tview.NewModal()
	a.pages.
		AddPage(PageDashboard, a.dashboardPage(), true, true).
		AddPage(PageTransactions, a.transactionsPage(), true, false).
		AddPage(PageFixed, a.fixedPage(), true, false).
		AddPage(PageAdd, a.formPage(), true, false).
		AddPage(PageSettings, a.settingsPage(), true, false).
		AddPage(PagePrompt, a.prompt, true, false)

	a.nav = tview.NewTextView().SetDynamicColors(true)
	a.status = tview.NewTextView().SetDynamicColors(true)

	a.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.status, 1, 0, false).
		AddItem(a.nav, 1, 0, false)

	a.app.SetInputCapture(a.capture)
	a.switchTo(PageDashboard)
	a.refresh()
	return a
}

// Run blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	go func() {
		<-ctx.Done()
		a.app.Stop()
	}()
	return a.app.SetRoot(a.layout, true).EnableMouse(true).Run()
}

// capture is the global key handler.
func (a *App) capture(e *tcell.EventKey) *tcell.EventKey {
	front, _ := a.pages.GetFrontPage()
	if front == PagePrompt {
		return e
	}

	switch e.Key() {
	case tcell.KeyF1:
		a.switchTo(PageDashboard)
		return nil
	case tcell.KeyF2:
		a.switchTo(PageTransactions)
		return nil
	case tcell.KeyF3:
		a.switchTo(PageFixed)
		return nil
	case tcell.KeyF4:
		a.switchTo(PageAdd)
		return nil
	case tcell.KeyF5:
		a.switchTo(PageSettings)
		return nil
	case tcell.KeyEscape:
		a.clearStatus()
		return e
	}

	if front == PageDashboard && e.Key() == tcell.KeyRune {
		switch e.Rune() {
		case 'm':
			a.requestAdvice()
			return nil
		case 'q':
			a.confirm("Sair do Finmo?", a.app.Stop)
			return nil
		}
	}
	return e
}

func (a *App) switchTo(page string) {
	a.pages.SwitchToPage(page)
	a.renderNav(page)
	switch page {
	case PageTransactions:
		a.app.SetFocus(a.txFilter)
	case PageFixed:
		a.app.SetFocus(a.fixedTable)
	case PageAdd:
		a.app.SetFocus(a.form)
	case PageSettings:
		a.app.SetFocus(a.settings)
	default:
		a.app.SetFocus(a.forecast)
	}
}

func (a *App) renderNav(current string) {
	items := []struct{ key, page, label string }{
		{"F1", PageDashboard, "Painel"},
		{"F2", PageTransactions, "Movimentos"},
		{"F3", PageFixed, "Fixos"},
		{"F4", PageAdd, "Novo"},
		{"F5", PageSettings, "Definições"},
	}
	text := ""
	for _, it := range items {
		color := "gray"
		if it.page == current {
			color = "white::b"
		}
		text += fmt.Sprintf("[yellow]%s[-] [%s]%s[-:-:-]  ", it.key, color, it.label)
	}
	if current == PageDashboard {
		text += "[yellow]m[-] mentoria  [yellow]q[-] sair"
	}
	if user := a.ledger.User(); !user.IsZero() {
		text += fmt.Sprintf("  [gray]%s[-]", tview.Escape(user.Name))
	}
	a.nav.SetText(text)
}

// refresh re-renders every view from the ledger.
func (a *App) refresh() {
	a.renderDashboard()
	a.renderTransactions()
	a.renderFixed()
	a.renderSettings()
	front, _ := a.pages.GetFrontPage()
	a.renderNav(front)
}

func (a *App) showStatus(msg string) {
	a.status.SetText("[green]" + tview.Escape(msg) + "[-]")
}

func (a *App) showError(msg string, err error) {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	a.status.SetText("[red]" + tview.Escape(msg) + "[-]")
}

func (a *App) clearStatus() {
	a.status.SetText("")
}

// confirm shows a yes/no prompt and runs onYes when accepted.
func (a *App) confirm(text string, onYes func()) {
	prev, _ := a.pages.GetFrontPage()
	if prev == PagePrompt {
		return
	}

	a.prompt.ClearButtons().
		AddButtons([]string{"Sim", "Cancelar"}).
		SetText(text).
		SetDoneFunc(func(buttonIndex int, _ string) {
			a.switchTo(prev)
			if buttonIndex == 0 {
				onYes()
			}
		}).
		SetBackgroundColor(tcell.ColorGoldenrod).
		SetTextColor(tcell.ColorBlack)

	a.pages.SwitchToPage(PagePrompt)
	a.prompt.SetFocus(1)
	a.app.SetFocus(a.prompt)
}

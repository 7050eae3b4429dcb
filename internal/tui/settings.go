package tui

import (
	"fmt"
	"strconv"
	"strings"

	"finmo/internal/core"
	"finmo/internal/session"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	fieldIncome = "Renda base mensal"
	fieldPayday = "Dia do salário"
	fieldToken  = "Token Google"
)

func (a *App) settingsPage() *tview.Flex {
	a.settingsInfo = tview.NewTextView().SetDynamicColors(true)
	a.settingsInfo.SetBorder(true).SetTitle(" Sessão ")

	a.settings = tview.NewForm()
	a.settings.SetBorder(true).SetTitle(" Definições ")
	a.settings.SetLabelColor(tcell.ColorViolet)
	a.settings.SetFieldBackgroundColor(tcell.NewRGBColor(40, 40, 40))

	a.settings.
		AddInputField(fieldIncome, "", 16, nil, nil).
		AddInputField(fieldPayday, "", 4, dayValidator, nil).
		AddPasswordField(fieldToken, "", 40, '*', nil).
		AddButton("Guardar", a.saveSettings).
		AddButton("Entrar", a.signIn).
		AddButton("Sair da sessão", a.signOut).
		AddButton("Repor tudo", func() {
			a.confirm("Apagar todos os movimentos, custos fixos e definições?", a.reset)
		})

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.settings, 0, 1, true).
		AddItem(a.settingsInfo, 5, 0, false)
}

// dayValidator accepts partial input while typing a day of month.
func dayValidator(text string, _ rune) bool {
	if text == "" {
		return true
	}
	n, err := strconv.Atoi(text)
	return err == nil && n >= 0 && n <= 31
}

func (a *App) settingsField(label string) *tview.InputField {
	field, _ := a.settings.GetFormItemByLabel(label).(*tview.InputField)
	return field
}

func (a *App) renderSettings() {
	snap := a.ledger.Snapshot()
	a.settingsField(fieldIncome).SetText(snap.BaseIncome.String())
	a.settingsField(fieldPayday).SetText(strconv.Itoa(snap.Payday))

	if snap.User.IsZero() {
		a.settingsInfo.SetText("[gray]Sem sessão. Cole um token de identidade Google e prima Entrar.[-]")
		return
	}
	a.settingsInfo.SetText(fmt.Sprintf("%s\n[gray]%s[-]",
		tview.Escape(snap.User.Name), tview.Escape(snap.User.Email)))
}

func (a *App) saveSettings() {
	income, err := core.ParseAmount(a.settingsField(fieldIncome).GetText())
	if err != nil {
		a.showError("Renda inválida", err)
		return
	}
	day, err := strconv.Atoi(strings.TrimSpace(a.settingsField(fieldPayday).GetText()))
	if err != nil {
		a.showError("Dia do salário inválido", err)
		return
	}
	if err := a.ledger.SetPayday(a.ctx, day); err != nil {
		a.showError("Dia do salário inválido", err)
		return
	}
	if err := a.ledger.SetBaseIncome(a.ctx, income); err != nil {
		a.showError("Renda inválida", err)
		return
	}
	a.refresh()
	a.showStatus("Definições guardadas")
}

func (a *App) signIn() {
	token := a.settingsField(fieldToken)
	user, err := session.Decode(token.GetText())
	if err != nil {
		a.logger.WarnContext(a.ctx, "Sign-in failed", "error", err)
		a.showError("Não foi possível ler o token", nil)
		return
	}
	token.SetText("")
	a.ledger.SignIn(a.ctx, user)
	a.refresh()
	a.showStatus("Bem-vindo, " + user.Name)
}

func (a *App) signOut() {
	a.ledger.SignOut(a.ctx)
	a.refresh()
	a.showStatus("Sessão terminada")
}

func (a *App) reset() {
	a.ledger.Reset(a.ctx)
	a.clearAdvice()
	a.txFilter.SetText("")
	a.refresh()
	a.showStatus("Dados repostos")
}

package tui

import (
	"errors"

	"finmo/internal/core"
	"finmo/internal/ledger"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// formState is the selection part of the add form. Text fields are read
// straight from their inputs on submit.
type formState struct {
	kind        formKind
	category    core.CategoryType
	subcategory string
}

const (
	fieldDescription = "Descrição"
	fieldAmount      = "Valor"
)

var formKinds = []formKind{formExpense, formIncome, formFixed}

func (a *App) formPage() *tview.Form {
	a.form = tview.NewForm()
	a.form.SetBorder(true).SetTitle(" Novo registo ")
	a.form.SetLabelColor(tcell.ColorViolet)
	a.form.SetFieldBackgroundColor(tcell.NewRGBColor(40, 40, 40))

	kinds := make([]string, len(formKinds))
	for i, k := range formKinds {
		kinds[i] = k.String()
	}

	a.category = tview.NewDropDown().SetLabel("Categoria")
	a.subcategory = tview.NewDropDown().SetLabel("Subcategoria")
	a.interest = tview.NewInputField().SetLabel("Juros (só dívida com juros)").SetFieldWidth(16)
	a.dueDate = tview.NewInputField().SetLabel("Vencimento (AAAA-MM-DD)").SetFieldWidth(12)

	a.form.
		AddDropDown("Tipo", kinds, 0, func(_ string, i int) {
			if i >= 0 && i < len(formKinds) {
				a.setFormKind(formKinds[i])
			}
		}).
		AddInputField(fieldDescription, "", 40, nil, nil).
		AddInputField(fieldAmount, "", 16, nil, nil).
		AddFormItem(a.category).
		AddFormItem(a.subcategory).
		AddFormItem(a.interest).
		AddFormItem(a.dueDate).
		AddButton("Guardar", a.submitForm).
		AddButton("Limpar", a.resetForm)

	a.setFormKind(formExpense)
	return a.form
}

// setFormKind swaps the category choices for k, selecting the first one.
func (a *App) setFormKind(k formKind) {
	a.formState.kind = k
	cats := formCategories(k)
	labels := make([]string, len(cats))
	tax := core.DefaultTaxonomy()
	for i, c := range cats {
		labels[i] = tax.Label(c)
	}
	a.category.SetOptions(labels, func(_ string, i int) {
		if i >= 0 && i < len(cats) {
			a.setFormCategory(cats[i])
		}
	})
	a.category.SetCurrentOption(0)
}

// setFormCategory swaps the subcategory choices and toggles the debt fields.
func (a *App) setFormCategory(c core.CategoryType) {
	a.formState.category = c
	subs := core.DefaultTaxonomy().Subcategories(c)
	a.subcategory.SetOptions(subs, func(text string, _ int) {
		a.formState.subcategory = text
	})
	a.subcategory.SetCurrentOption(0)

	debtAllowed := c.IsDebt() && a.formState.kind != formFixed
	a.interest.SetDisabled(c != core.DebtInterest || a.formState.kind == formFixed)
	a.dueDate.SetDisabled(!debtAllowed)
	if c != core.DebtInterest {
		a.interest.SetText("")
	}
	if !debtAllowed {
		a.dueDate.SetText("")
	}
}

func (a *App) formText(label string) string {
	item := a.form.GetFormItemByLabel(label)
	if field, ok := item.(*tview.InputField); ok {
		return field.GetText()
	}
	return ""
}

func (a *App) submitForm() {
	desc := a.formText(fieldDescription)
	amount := a.formText(fieldAmount)
	st := a.formState

	var err error
	if st.kind == formFixed {
		fc, _ := st.category.Fixed()
		_, err = a.ledger.AddFixedExpense(a.ctx, ledger.FixedExpenseInput{
			Description: desc,
			Amount:      amount,
			Category:    fc,
		})
	} else {
		_, err = a.ledger.AddTransaction(a.ctx, ledger.TransactionInput{
			Description:    desc,
			Amount:         amount,
			Category:       st.category,
			Subcategory:    st.subcategory,
			InterestAmount: a.interest.GetText(),
			DueDate:        a.dueDate.GetText(),
		})
	}

	switch {
	case errors.Is(err, ledger.ErrMissingDescription), errors.Is(err, ledger.ErrMissingAmount):
		a.showError("Preencha a descrição e o valor", nil)
		return
	case err != nil:
		a.showError("Registo recusado", err)
		return
	}

	a.resetForm()
	a.refresh()
	a.showStatus("Registo guardado: " + st.kind.String())
	if st.kind == formFixed {
		a.switchTo(PageFixed)
	} else {
		a.switchTo(PageDashboard)
	}
}

func (a *App) resetForm() {
	for _, label := range []string{fieldDescription, fieldAmount} {
		if field, ok := a.form.GetFormItemByLabel(label).(*tview.InputField); ok {
			field.SetText("")
		}
	}
	a.interest.SetText("")
	a.dueDate.SetText("")
	if dd, ok := a.form.GetFormItemByLabel("Tipo").(*tview.DropDown); ok {
		dd.SetCurrentOption(0)
	}
}

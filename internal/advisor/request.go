package advisor

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"finmo/internal/core"
)

// DefaultRecentTransactions is how many transactions the prompt summarises.
const DefaultRecentTransactions = 15

// Request is the budget picture sent for advice.
type Request struct {
	Stats        core.BudgetStats
	Transactions []core.Transaction // newest first
	TotalIncome  core.Money
	Currency     string
	Recent       int
}

func (r Request) currency() string {
	if strings.TrimSpace(r.Currency) == "" {
		return "MT"
	}
	return r.Currency
}

func (r Request) recent() []core.Transaction {
	n := r.Recent
	if n <= 0 {
		n = DefaultRecentTransactions
	}
	if n > len(r.Transactions) {
		n = len(r.Transactions)
	}
	return r.Transactions[:n]
}

// Prompt renders the mentoring prompt in Portuguese.
func (r Request) Prompt() string {
	s := r.Stats
	cur := r.currency()
	amt := func(m core.Money) string { return m.String() + " " + cur }

	var b strings.Builder
	b.WriteString("Atue como Finmo, um mentor financeiro especializado na regra 50/30/20.\n")
	fmt.Fprintf(&b, "Analise os seguintes dados financeiros do usuário (Moeda: %s):\n\n", cur)

	fmt.Fprintf(&b, "Renda Total Disponível: %s (Base: %s + Variável: %s)\n",
		amt(r.TotalIncome), amt(s.BaseIncome), amt(s.VariableIncome))
	fmt.Fprintf(&b, "Gastos em Necessidades (Meta 50%% de %s): %s\n",
		amt(r.TotalIncome), amt(s.TotalNeeds.Add(s.ActiveDebts()).Add(s.FixedDebts)))
	fmt.Fprintf(&b, "Dívidas Ativas: %s\n", amt(s.ActiveDebts()))
	fmt.Fprintf(&b, "Gastos em Desejos (Meta 30%% de %s): %s\n",
		amt(r.TotalIncome), amt(s.Wants.Add(s.FixedWants)))
	fmt.Fprintf(&b, "Investimentos/Reserva (Meta 20%% de %s): %s\n\n",
		amt(r.TotalIncome), amt(s.Savings))

	b.WriteString("Lista de movimentações recentes:\n")
	for _, t := range r.recent() {
		dir := "SAÍDA"
		if t.IsIncome() {
			dir = "ENTRADA"
		}
		fmt.Fprintf(&b, "- %s: %s - %s (%s)\n", dir, t.Description, amt(t.Amount), t.Subcategory)
	}

	b.WriteString("\nRegras de Mentoria:\n")
	b.WriteString("1. Se houver Renda Variável expressiva, sugira alocar 100% dela para a Reserva de Emergência ou Dívidas se o usuário estiver fora das metas.\n")
	b.WriteString("2. Se Necessidades + Dívidas > 50% da renda total, status é 'critical'.\n")
	fmt.Fprintf(&b, "3. Fale sempre em %s. Seja direto e encorajador.\n", cur)
	b.WriteString("Responda com status (good, warning ou critical), uma mensagem curta e três recomendações.\n")

	return b.String()
}

// Fingerprint identifies requests that produce the same prompt.
func (r Request) Fingerprint() string {
	sum := sha256.Sum256([]byte(r.Prompt()))
	return hex.EncodeToString(sum[:])
}

// Package advisor asks a generative model for 50/30/20 mentoring and turns
// any failure into a fixed fallback.
package advisor

import (
	"context"
	"encoding/json"
	"strings"

	"finmo/internal/core"
)

// Client fetches advice from a remote model. Every error is an *Error.
type Client interface {
	Advise(ctx context.Context, req Request) (core.AIAdvice, error)
}

// Fallback is shown whenever advice cannot be obtained.
func Fallback() core.AIAdvice {
	return core.AIAdvice{
		Status:  core.AdviceWarning,
		Message: "Houve um erro na análise, mas continue monitorando suas entradas variáveis para acelerar sua independência.",
		Recommendations: []string{
			"Mantenha o registro de proveniência",
			"Não gaste a renda extra antes de recebê-la",
			"Foco na reserva",
		},
	}
}

// ParseAdvice decodes a model reply. Invalid JSON or an unknown status is
// malformed.
func ParseAdvice(text string) (core.AIAdvice, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.AIAdvice{}, malformed("empty reply")
	}

	var advice core.AIAdvice
	if err := json.Unmarshal([]byte(text), &advice); err != nil {
		return core.AIAdvice{}, malformed("decode reply: %w", err)
	}
	if !advice.Status.IsValid() {
		return core.AIAdvice{}, malformed("unknown status %q", advice.Status)
	}
	if advice.Recommendations == nil {
		advice.Recommendations = []string{}
	}
	return advice, nil
}

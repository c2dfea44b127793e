package llm

import "context"

// Outcome is the explicit result of one generation call: either text or a
// failure reason. Callers select a fallback from a failed outcome instead of
// treating generation errors as control flow.
type Outcome struct {
	Text          string
	FailureReason string
}

// OK reports whether the generation produced text.
func (o Outcome) OK() bool {
	return o.FailureReason == ""
}

// TextOr returns the generated text, or fallback when generation failed or
// produced nothing.
func (o Outcome) TextOr(fallback string) string {
	if !o.OK() || o.Text == "" {
		return fallback
	}
	return o.Text
}

// Generate runs one generation call against the client and wraps the result
// as an Outcome. A nil client counts as an unavailable capability, not an
// error.
func Generate(ctx context.Context, client Client, prompt string, maxTokens int) Outcome {
	if client == nil {
		return Outcome{FailureReason: "no generation client configured"}
	}
	text, err := client.Generate(ctx, prompt, maxTokens)
	if err != nil {
		return Outcome{FailureReason: err.Error()}
	}
	return Outcome{Text: text}
}

// FallbackPlan is the deterministic progression plan used when the generation
// capability is unavailable.
const FallbackPlan = `[GENERATION UNAVAILABLE] Condensed plan:
Phase 1 (0-2 months): review Python/SQL fundamentals, 2 exercises per week.
Phase 2 (2-4 months): practical project aligned with the target role, weekly review.
Phase 3 (4-6 months): industrialize, document and publish a portfolio.`

// FallbackBio is the deterministic bio used when generation is unavailable.
const FallbackBio = `[GENERATION UNAVAILABLE] Data/AI practitioner building skills through hands-on projects, with a structured progression plan toward the recommended role.`

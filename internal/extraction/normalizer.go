// SPDX-License-Identifier: Apache-2.0

package extraction

import "github.com/chatsql/chatsql-mcp/internal/extraction/steps"

// Normalizer turns raw model output into a JSON candidate by running a fixed
// sequence of steps. It never fails.
type Normalizer struct {
	steps []Step
}

// NewNormalizer creates a Normalizer that applies sequence in the given order.
func NewNormalizer(sequence ...Step) *Normalizer {
	return &Normalizer{steps: sequence}
}

// DefaultNormalizer returns the standard sequence: trim, strip the leading
// ```json fence, strip the trailing ``` fence, trim again, then patch the
// outer braces.
func DefaultNormalizer() *Normalizer {
	return NewNormalizer(
		steps.NewTrim(),
		steps.NewStripLeadingFence(),
		steps.NewStripTrailingFence(),
		steps.NewTrim(),
		steps.NewEnsureOpenBrace(),
		steps.NewEnsureCloseBrace(),
	)
}

// Normalize returns the candidate for raw.
func (n *Normalizer) Normalize(raw string) string {
	candidate, _ := n.NormalizeWithTrace(raw)
	return candidate
}

// NormalizeWithTrace returns the candidate for raw together with the names
// of the steps that changed the text, in application order.
func (n *Normalizer) NormalizeWithTrace(raw string) (string, []string) {
	text := raw
	applied := []string{}
	for _, step := range n.steps {
		next := step.Apply(text)
		if next != text {
			applied = append(applied, step.Name())
		}
		text = next
	}
	return text, applied
}

// RegisteredSteps returns the names of all steps in application order.
func (n *Normalizer) RegisteredSteps() []string {
	names := make([]string, len(n.steps))
	for i, step := range n.steps {
		names[i] = step.Name()
	}
	return names
}

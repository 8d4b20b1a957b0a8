// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"context"
	"fmt"
)

// Pipeline composes a Normalizer and a Projector. It holds no mutable state
// and may be shared between goroutines.
type Pipeline struct {
	normalizer *Normalizer
	projector  *Projector
}

// NewPipeline creates a new Pipeline that normalizes with the provided steps.
// The Projector is created internally.
func NewPipeline(sequence ...Step) *Pipeline {
	return &Pipeline{
		normalizer: NewNormalizer(sequence...),
		projector:  NewProjector(),
	}
}

// DefaultPipeline returns a Pipeline using DefaultNormalizer.
func DefaultPipeline() *Pipeline {
	return &Pipeline{
		normalizer: DefaultNormalizer(),
		projector:  NewProjector(),
	}
}

// RunResult is the output of a pipeline run.
type RunResult struct {
	Record Record
	// Candidate is the normalized text that was parsed.
	Candidate string
	// AppliedSteps names the normalization steps that changed the text.
	AppliedSteps []string
}

func (p *Pipeline) Run(ctx context.Context, raw string) (Record, error) {
	result, err := p.RunWithMeta(ctx, raw)
	if err != nil {
		return Record{}, err
	}
	return result.Record, nil
}

// RunWithMeta normalizes raw and projects the result. On a parse failure the
// returned RunResult still carries the candidate and applied steps.
func (p *Pipeline) RunWithMeta(ctx context.Context, raw string) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, fmt.Errorf("extraction cancelled: %w", err)
	}

	candidate, applied := p.normalizer.NormalizeWithTrace(raw)
	result := RunResult{
		Candidate:    candidate,
		AppliedSteps: applied,
	}

	record, err := p.projector.Project(candidate)
	if err != nil {
		return result, err
	}
	result.Record = record
	return result, nil
}

// RegisteredSteps returns the names of the normalization steps in order.
func (p *Pipeline) RegisteredSteps() []string {
	return p.normalizer.RegisteredSteps()
}

var defaultPipeline = DefaultPipeline()

// Normalize runs the default normalization sequence over raw.
func Normalize(raw string) string {
	return defaultPipeline.normalizer.Normalize(raw)
}

// Project parses candidate and projects it into a Record.
func Project(candidate string) (Record, error) {
	return defaultPipeline.projector.Project(candidate)
}

// Extract is Project(Normalize(raw)).
func Extract(raw string) (Record, error) {
	return defaultPipeline.Run(context.Background(), raw)
}

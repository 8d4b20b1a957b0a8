// SPDX-License-Identifier: Apache-2.0

// Package steps holds the text transformations used to turn a model response
// into a JSON candidate. Each step is pure and safe to reuse.
package steps

import "strings"

// Trim removes leading and trailing whitespace.
type Trim struct{}

func NewTrim() *Trim {
	return &Trim{}
}

func (s *Trim) Name() string {
	return "trim"
}

func (s *Trim) Apply(text string) string {
	return strings.TrimSpace(text)
}

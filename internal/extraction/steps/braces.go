// SPDX-License-Identifier: Apache-2.0

package steps

import "strings"

// EnsureOpenBrace prepends '{' when the text does not already start with one.
// It only patches the outer edge and never counts interior braces.
type EnsureOpenBrace struct{}

func NewEnsureOpenBrace() *EnsureOpenBrace {
	return &EnsureOpenBrace{}
}

func (s *EnsureOpenBrace) Name() string {
	return "ensure-open-brace"
}

func (s *EnsureOpenBrace) Apply(text string) string {
	if strings.HasPrefix(text, "{") {
		return text
	}
	return "{" + text
}

// EnsureCloseBrace appends '}' when the text does not already end with one.
type EnsureCloseBrace struct{}

func NewEnsureCloseBrace() *EnsureCloseBrace {
	return &EnsureCloseBrace{}
}

func (s *EnsureCloseBrace) Name() string {
	return "ensure-close-brace"
}

func (s *EnsureCloseBrace) Apply(text string) string {
	if strings.HasSuffix(text, "}") {
		return text
	}
	return text + "}"
}

// SPDX-License-Identifier: Apache-2.0

package steps

import "strings"

const (
	// JSONFence opens a markdown code block tagged json.
	JSONFence = "```json"
	// Fence closes a markdown code block.
	Fence = "```"
)

// StripLeadingFence removes an opening ```json marker. Only the first
// occurrence is removed; later markers inside the text are left alone.
type StripLeadingFence struct{}

// NewStripLeadingFence creates a new StripLeadingFence.
func NewStripLeadingFence() *StripLeadingFence {
	return &StripLeadingFence{}
}

func (s *StripLeadingFence) Name() string {
	return "strip-leading-fence"
}

func (s *StripLeadingFence) Apply(text string) string {
	if !strings.HasPrefix(text, JSONFence) {
		return text
	}
	return strings.Replace(text, JSONFence, "", 1)
}

// StripTrailingFence removes a closing ``` marker from the end of the text.
// It runs whether or not an opening fence was found.
type StripTrailingFence struct{}

// NewStripTrailingFence creates a new StripTrailingFence.
func NewStripTrailingFence() *StripTrailingFence {
	return &StripTrailingFence{}
}

func (s *StripTrailingFence) Name() string {
	return "strip-trailing-fence"
}

func (s *StripTrailingFence) Apply(text string) string {
	if !strings.HasSuffix(text, Fence) {
		return text
	}
	return text[:len(text)-len(Fence)]
}

// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Record is the quiz document projected out of a model response. Every field is
// always present; fields the model omitted hold empty values.
type Record struct {
	Hint        string   `json:"hint"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	// TableStructure, Tuples and ExpectedResult hold the verbatim JSON of each
	// array element. Element shapes are never inspected.
	TableStructure []json.RawMessage `json:"tableStructure"`
	Tuples         []json.RawMessage `json:"tuples"`
	ExpectedResult []json.RawMessage `json:"expected_result"`
	Problem        []string          `json:"problem"`
}

// EmptyRecord returns a Record with every field set to its empty default.
func EmptyRecord() Record {
	return Record{
		Tags:           []string{},
		TableStructure: []json.RawMessage{},
		Tuples:         []json.RawMessage{},
		ExpectedResult: []json.RawMessage{},
		Problem:        []string{},
	}
}

// Step is a single pure text transformation applied by the Normalizer.
type Step interface {
	Apply(text string) string
	Name() string
}

// ErrMalformedDocument is matched by every *MalformedDocumentError.
var ErrMalformedDocument = errors.New("malformed document")

// MalformedDocumentError reports a normalized candidate that is not valid JSON.
type MalformedDocumentError struct {
	// Candidate is the normalized text handed to the parser.
	Candidate string
	// Offset is the byte offset in Candidate where parsing failed.
	Offset int64
	// Repairable is set when a general JSON repairer could have made Candidate
	// parseable. It is informational only.
	Repairable bool
	Err        error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document at offset %d: %v", e.Offset, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

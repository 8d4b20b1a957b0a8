// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/kaptinlin/jsonrepair"
)

// fieldRule binds a top-level document key to the Record field it fills.
// assign is only called when the key is present; it must leave the default in
// place when the value has the wrong type.
type fieldRule struct {
	key    string
	assign func(r *Record, value json.RawMessage)
}

// recordFieldRules lists the projected keys in Record order. Keys are matched
// exactly and case-sensitively.
var recordFieldRules = []fieldRule{
	{key: "hint", assign: func(r *Record, v json.RawMessage) {
		r.Hint = stringField(v)
	}},
	{key: "description", assign: func(r *Record, v json.RawMessage) {
		r.Description = stringField(v)
	}},
	{key: "tags", assign: func(r *Record, v json.RawMessage) {
		r.Tags = stringSliceField(v)
	}},
	{key: "tableStructure", assign: func(r *Record, v json.RawMessage) {
		r.TableStructure = objectSliceField(v)
	}},
	{key: "tuples", assign: func(r *Record, v json.RawMessage) {
		r.Tuples = objectSliceField(v)
	}},
	{key: "expected_result", assign: func(r *Record, v json.RawMessage) {
		r.ExpectedResult = objectSliceField(v)
	}},
	{key: "problem", assign: func(r *Record, v json.RawMessage) {
		r.Problem = stringSliceField(v)
	}},
}

// Projector parses a JSON candidate and projects the quiz fields out of it.
type Projector struct{}

// NewProjector creates a new Projector.
func NewProjector() *Projector {
	return &Projector{}
}

// Project parses candidate as strict JSON and builds a Record from it. The only
// error is *MalformedDocumentError. A document that parses but is not an
// object, or lacks some keys, yields empty defaults instead of an error.
func (p *Projector) Project(candidate string) (Record, error) {
	var doc json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return Record{}, newMalformedDocumentError(candidate, err)
	}
	return p.projectDocument(doc), nil
}

func (p *Projector) projectDocument(doc json.RawMessage) Record {
	record := EmptyRecord()

	var fields map[string]json.RawMessage
	if kindOf(doc) != '{' || json.Unmarshal(doc, &fields) != nil {
		return record
	}

	for _, rule := range recordFieldRules {
		if value, ok := fields[rule.key]; ok {
			rule.assign(&record, value)
		}
	}
	return record
}

func stringField(v json.RawMessage) string {
	if kindOf(v) != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

func stringSliceField(v json.RawMessage) []string {
	items, ok := elementsOf(v, '"')
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return []string{}
		}
		out = append(out, s)
	}
	return out
}

// objectSliceField keeps every element of an array as raw bytes. Element
// shapes are not inspected; only a non-array or null value defaults.
func objectSliceField(v json.RawMessage) []json.RawMessage {
	items, ok := arrayElements(v)
	if !ok {
		return []json.RawMessage{}
	}
	return items
}

// elementsOf splits a JSON array into its elements and reports whether every
// element starts with kind. null and non-arrays report false.
func elementsOf(v json.RawMessage, kind byte) ([]json.RawMessage, bool) {
	items, ok := arrayElements(v)
	if !ok {
		return nil, false
	}
	for _, item := range items {
		if kindOf(item) != kind {
			return nil, false
		}
	}
	return items, true
}

// arrayElements splits a JSON array into its elements. null and non-arrays
// report false.
func arrayElements(v json.RawMessage) ([]json.RawMessage, bool) {
	if kindOf(v) != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil, false
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, true
}

// kindOf returns the first significant byte of a JSON value, or 0 if empty.
func kindOf(v json.RawMessage) byte {
	trimmed := bytes.TrimSpace(v)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func newMalformedDocumentError(candidate string, err error) *MalformedDocumentError {
	offset := int64(len(candidate))
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	return &MalformedDocumentError{
		Candidate:  candidate,
		Offset:     offset,
		Repairable: repairable(candidate),
		Err:        err,
	}
}

// repairable reports whether jsonrepair can turn candidate into valid JSON.
// The repaired text is discarded.
func repairable(candidate string) bool {
	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return false
	}
	return json.Valid([]byte(repaired))
}

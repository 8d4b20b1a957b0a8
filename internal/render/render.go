// SPDX-License-Identifier: Apache-2.0

// Package render encodes extracted records for the CLI and HTTP surfaces.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/chatsql/chatsql-mcp/internal/extraction"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Supported envelopes.
const (
	EnvelopeNone = "none"
	EnvelopeDify = "dify"
)

// DifyResponse mirrors the workflow response consumed by the quiz front end:
// the record sits under data.outputs.
type DifyResponse struct {
	Data DifyData `json:"data"`
}

type DifyData struct {
	Outputs extraction.Record `json:"outputs"`
}

// Wrap returns the value to encode for the given envelope.
func Wrap(record extraction.Record, envelope string) (any, error) {
	switch strings.ToLower(envelope) {
	case "", EnvelopeNone:
		return record, nil
	case EnvelopeDify:
		return DifyResponse{Data: DifyData{Outputs: record}}, nil
	}
	return nil, fmt.Errorf("unsupported envelope %q (want %q or %q)", envelope, EnvelopeNone, EnvelopeDify)
}

// Encode renders v in the requested format. Only JSON output keeps the literal
// text of nested values; just the indentation is rewritten. YAML output is
// converted from the JSON encoding, so key order survives but numbers are
// normalized (1.50 becomes 1.5).
func Encode(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML, "yml":
		doc, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		out, err := yaml.JSONToYAML(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert to YAML: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported output format %q (want %q or %q)", format, FormatJSON, FormatYAML)
}

// Record wraps and encodes record in one call.
func Record(record extraction.Record, format, envelope string) ([]byte, error) {
	v, err := Wrap(record, envelope)
	if err != nil {
		return nil, err
	}
	return Encode(v, format)
}

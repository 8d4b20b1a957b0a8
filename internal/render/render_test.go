// SPDX-License-Identifier: Apache-2.0

package render_test

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatsql/chatsql-mcp/internal/extraction"
	"github.com/chatsql/chatsql-mcp/internal/render"
)

func sampleRecord(t *testing.T) extraction.Record {
	t.Helper()
	record, err := extraction.Extract("```json\n" +
		`{"hint": "h", "tags": ["join"], "tuples": [{"tableName": "T", "tupleData": [{"id": 1}]}]}` +
		"\n```")
	require.NoError(t, err)
	return record
}

func TestRecord_JSON(t *testing.T) {
	out, err := render.Record(sampleRecord(t), render.FormatJSON, render.EnvelopeNone)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"hint": "h",
		"description": "",
		"tags": ["join"],
		"tableStructure": [],
		"tuples": [{"tableName": "T", "tupleData": [{"id": 1}]}],
		"expected_result": [],
		"problem": []
	}`, string(out))
}

func TestRecord_DifyEnvelope(t *testing.T) {
	out, err := render.Record(sampleRecord(t), "", render.EnvelopeDify)
	require.NoError(t, err)

	var resp struct {
		Data struct {
			Outputs map[string]json.RawMessage `json:"outputs"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Len(t, resp.Data.Outputs, 7)
	assert.JSONEq(t, `"h"`, string(resp.Data.Outputs["hint"]))
}

func TestRecord_YAML(t *testing.T) {
	out, err := render.Record(sampleRecord(t), render.FormatYAML, render.EnvelopeNone)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "h", doc["hint"])
	assert.Equal(t, "", doc["description"])
	assert.Equal(t, []any{"join"}, doc["tags"])
	assert.Contains(t, doc, "expected_result")
	assert.Len(t, doc, 7)
}

func TestRecord_JSONKeepsNumberLiterals(t *testing.T) {
	record, err := extraction.Extract(`{"expected_result": [{"price": 1.50, "qty": 1e2}]}`)
	require.NoError(t, err)

	out, err := render.Record(record, render.FormatJSON, render.EnvelopeNone)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"price": 1.50`)
	assert.Contains(t, string(out), `"qty": 1e2`)
}

func TestRecord_Unsupported(t *testing.T) {
	record := extraction.EmptyRecord()

	_, err := render.Record(record, "xml", render.EnvelopeNone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")

	_, err = render.Record(record, render.FormatJSON, "soap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported envelope")
}

// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chatsql/chatsql-mcp/internal/extraction"
)

var objectArraySchema = map[string]interface{}{
	"type": "array",
}

var stringArraySchema = map[string]interface{}{
	"type":  "array",
	"items": map[string]interface{}{"type": "string"},
}

// MetadataExtractQuizDocument describes the extract_quiz_document tool.
var MetadataExtractQuizDocument = &mcp.Tool{
	Name: "extract_quiz_document",
	Description: "Extract a SQL practice quiz document from raw language model output. " +
		"The text may be wrapped in a ```json code fence and may be missing its outer braces; " +
		"both are repaired before strict JSON parsing. " +
		"Returns hint, description, tags, tableStructure, tuples, expected_result and problem. " +
		"Fields the model omitted, or that have the wrong type, come back empty. " +
		"Text that is still not valid JSON after repair is reported as a malformed document.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw model output expected to contain the quiz JSON object",
			},
		},
	},
	OutputSchema: map[string]interface{}{
		"type": "object",
		"required": []string{
			"hint", "description", "tags", "tableStructure",
			"tuples", "expected_result", "problem", "applied_steps",
		},
		"properties": map[string]interface{}{
			"hint":            map[string]interface{}{"type": "string"},
			"description":     map[string]interface{}{"type": "string"},
			"tags":            stringArraySchema,
			"tableStructure":  objectArraySchema,
			"tuples":          objectArraySchema,
			"expected_result": objectArraySchema,
			"problem":         stringArraySchema,
			"applied_steps":   stringArraySchema,
		},
	},
}

// InputExtractQuizDocument is the input for the ExtractQuizDocument tool.
type InputExtractQuizDocument struct {
	Content string `json:"content"`
}

// OutputExtractQuizDocument is the output for the ExtractQuizDocument tool.
type OutputExtractQuizDocument struct {
	extraction.Record
	// AppliedSteps names the normalization steps that changed the input.
	AppliedSteps []string `json:"applied_steps"`
}

var defaultPipeline = extraction.DefaultPipeline()

// ExtractQuizDocument runs the extraction pipeline over the provided content.
func ExtractQuizDocument(ctx context.Context, _ *mcp.CallToolRequest, input InputExtractQuizDocument) (*mcp.CallToolResult, OutputExtractQuizDocument, error) {
	if input.Content == "" {
		return nil, OutputExtractQuizDocument{}, fmt.Errorf("content is required")
	}

	result, err := defaultPipeline.RunWithMeta(ctx, input.Content)
	if err != nil {
		var malformed *extraction.MalformedDocumentError
		if errors.As(err, &malformed) && malformed.Repairable {
			return nil, OutputExtractQuizDocument{}, fmt.Errorf("%w (the JSON has defects beyond fences and outer braces; regenerating the response is recommended)", err)
		}
		return nil, OutputExtractQuizDocument{}, err
	}

	return nil, OutputExtractQuizDocument{
		Record:       result.Record,
		AppliedSteps: result.AppliedSteps,
	}, nil
}

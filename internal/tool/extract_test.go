// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chatsql/chatsql-mcp/internal/extraction"
)

func TestExtractQuizDocument(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	tests := []struct {
		name           string
		input          InputExtractQuizDocument
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputExtractQuizDocument)
	}{
		{
			name:        "empty content returns error",
			input:       InputExtractQuizDocument{Content: ""},
			wantErr:     true,
			errContains: "content is required",
		},
		{
			name: "fenced document is extracted",
			input: InputExtractQuizDocument{
				Content: "```json\n{\"hint\": \"use JOIN\", \"tags\": [\"join\"], \"problem\": [\"1. list orders\"]}\n```",
			},
			validateOutput: func(t *testing.T, output OutputExtractQuizDocument) {
				assert.Equal(t, "use JOIN", output.Hint)
				assert.Equal(t, []string{"join"}, output.Tags)
				assert.Equal(t, []string{"1. list orders"}, output.Problem)
				assert.Contains(t, output.AppliedSteps, "strip-leading-fence")
				assert.Contains(t, output.AppliedSteps, "strip-trailing-fence")
			},
		},
		{
			name: "missing braces are repaired",
			input: InputExtractQuizDocument{
				Content: `"description": "orders and customers", "tuples": [{"tableName": "Orders", "tupleData": []}]`,
			},
			validateOutput: func(t *testing.T, output OutputExtractQuizDocument) {
				assert.Equal(t, "orders and customers", output.Description)
				require.Len(t, output.Tuples, 1)
				assert.JSONEq(t, `{"tableName": "Orders", "tupleData": []}`, string(output.Tuples[0]))
				assert.Equal(t, []string{"ensure-open-brace", "ensure-close-brace"}, output.AppliedSteps)
			},
		},
		{
			name:  "clean document applies no steps",
			input: InputExtractQuizDocument{Content: `{"hint": "h"}`},
			validateOutput: func(t *testing.T, output OutputExtractQuizDocument) {
				assert.Equal(t, "h", output.Hint)
				assert.Empty(t, output.AppliedSteps)
				assert.NotNil(t, output.AppliedSteps)
				assert.Equal(t, []string{}, output.Tags)
			},
		},
		{
			name:        "plain text is a malformed document",
			input:       InputExtractQuizDocument{Content: "not json at all"},
			wantErr:     true,
			errContains: "malformed document",
		},
		{
			name:        "repairable defects carry a regeneration hint",
			input:       InputExtractQuizDocument{Content: `{"hint": "h",}`},
			wantErr:     true,
			errContains: "regenerating the response is recommended",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := ExtractQuizDocument(ctx, req, tt.input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestExtractQuizDocument_MalformedIsTyped(t *testing.T) {
	_, _, err := ExtractQuizDocument(context.Background(), &mcp.CallToolRequest{}, InputExtractQuizDocument{Content: "{hint: h"})
	require.Error(t, err)
	assert.ErrorIs(t, err, extraction.ErrMalformedDocument)
}

func TestNewServer_CallTool(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.InfoLevel)

	server := NewServer(zap.New(core), "test")
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	assert.Equal(t, "extract_quiz_document", tools.Tools[0].Name)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "extract_quiz_document",
		Arguments: map[string]any{"content": "```json\n{\"hint\": \"h\"}\n```"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.NotNil(t, res.StructuredContent)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "extract_quiz_document",
		Arguments: map[string]any{"content": "not json at all"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	assert.Equal(t, 1, logs.FilterMessage("tool call").Len())
	assert.Equal(t, 1, logs.FilterMessage("tool call failed").Len())
}

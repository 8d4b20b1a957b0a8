// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// NewServer creates an MCP server with every tool registered.
func NewServer(logger *zap.Logger, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "chatsql-mcp",
		Version: version,
	}, nil)

	mcp.AddTool(server, MetadataExtractQuizDocument, logCalls[InputExtractQuizDocument, OutputExtractQuizDocument](logger, MetadataExtractQuizDocument.Name, ExtractQuizDocument))
	return server
}

// logCalls wraps a tool handler with a log line per call.
func logCalls[In, Out any](logger *zap.Logger, name string, h mcp.ToolHandlerFor[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input In) (*mcp.CallToolResult, Out, error) {
		start := time.Now()
		res, out, err := h(ctx, req, input)
		if err != nil {
			logger.Warn("tool call failed",
				zap.String("tool", name),
				zap.Duration("latency", time.Since(start)),
				zap.Error(err),
			)
			return res, out, err
		}
		logger.Info("tool call",
			zap.String("tool", name),
			zap.Duration("latency", time.Since(start)),
		)
		return res, out, nil
	}
}

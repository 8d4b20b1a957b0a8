// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chatsql/chatsql-mcp/internal/extraction"
	"github.com/chatsql/chatsql-mcp/internal/render"
)

// Handler serves extraction requests.
type Handler struct {
	pipeline      *extraction.Pipeline
	logger        *zap.Logger
	maxInputBytes int64
}

func NewHandler(pipeline *extraction.Pipeline, logger *zap.Logger, maxInputBytes int64) *Handler {
	return &Handler{
		pipeline:      pipeline,
		logger:        logger,
		maxInputBytes: maxInputBytes,
	}
}

type extractRequest struct {
	Content string `json:"content"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Offset     *int64 `json:"offset,omitempty"`
	Repairable *bool  `json:"repairable,omitempty"`
}

// Extract handles POST /v1/extract. The body is either the raw model output
// (any non-JSON content type) or {"content": "..."} with application/json.
// Query parameters: envelope=none|dify, format=json|yaml.
func (h *Handler) Extract(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxInputBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "input_too_large", Message: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	content := string(body)
	if c.ContentType() == gin.MIMEJSON {
		var req extractRequest
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
			return
		}
		content = req.Content
	}
	if strings.TrimSpace(content) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: "content is required"})
		return
	}

	result, err := h.pipeline.RunWithMeta(c.Request.Context(), content)
	if err != nil {
		var malformed *extraction.MalformedDocumentError
		if errors.As(err, &malformed) {
			h.logger.Warn("malformed document",
				zap.Int64("offset", malformed.Offset),
				zap.Bool("repairable", malformed.Repairable),
				zap.Strings("applied_steps", result.AppliedSteps),
				zap.Error(malformed.Err),
			)
			c.JSON(http.StatusUnprocessableEntity, errorResponse{
				Error:      "malformed_document",
				Message:    malformed.Err.Error(),
				Offset:     &malformed.Offset,
				Repairable: &malformed.Repairable,
			})
			return
		}
		h.logger.Error("extraction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal", Message: err.Error()})
		return
	}

	h.logger.Debug("document extracted", zap.Strings("applied_steps", result.AppliedSteps))

	format := c.DefaultQuery("format", render.FormatJSON)
	out, err := render.Record(result.Record, format, c.DefaultQuery("envelope", render.EnvelopeNone))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	contentType := "application/json; charset=utf-8"
	if strings.EqualFold(format, render.FormatYAML) || strings.EqualFold(format, "yml") {
		contentType = "application/yaml; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, out)
}

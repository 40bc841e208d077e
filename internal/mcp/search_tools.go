// ABOUTME: MCP tool implementations for word similarity operations.
// ABOUTME: Registers find_similar_words, highest_similarity, and table_info.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/wordsim/internal/report"
)

func (s *Server) registerSearchTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "find_similar_words",
		Description: "Find words whose embedding has cosine similarity above a threshold with each query word. Returns the plain-text report, and by default also writes it to the configured output file.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"words": {"type": "array", "items": {"type": "string"}, "description": "Query words; case is ignored", "minItems": 1},
				"threshold": {"type": "number", "description": "Exclusive similarity threshold between -1 and 1 (default: configured threshold)"},
				"write": {"type": "boolean", "description": "Write the report to the output file (default true)"}
			},
			"required": ["words"]
		}`),
	}, s.handleFindSimilarWords)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "highest_similarity",
		Description: "Read the output file and list the highest similarity score recorded for each query word.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleHighestSimilarity)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "table_info",
		Description: "Describe the loaded embedding table: path, entry count, dimension, skipped lines, threshold, and output file.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleTableInfo)
}

func (s *Server) handleFindSimilarWords(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Words     []string `json:"words"`
		Threshold *float64 `json:"threshold"`
		Write     *bool    `json:"write"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	query := strings.TrimSpace(strings.Join(args.Words, " "))
	if query == "" {
		return toolError("at least one word is required"), nil
	}

	threshold := s.session.Threshold()
	if args.Threshold != nil {
		if *args.Threshold < -1 || *args.Threshold > 1 {
			return toolError("threshold must be within [-1, 1], got %g", *args.Threshold), nil
		}
		threshold = *args.Threshold
	}

	batch, err := s.session.SearchWithThreshold(ctx, query, threshold)
	if err != nil {
		return toolError("search failed: %v", err), nil
	}

	text := batch.Text
	if args.Write == nil || *args.Write {
		if err := s.session.Persist(batch.Text); err != nil {
			text += fmt.Sprintf("\nWarning: %v", err)
		} else {
			text += fmt.Sprintf("\nResults have been written to the output file: %s", s.session.Info().OutputPath)
		}
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}, nil
}

func (s *Server) handleHighestSimilarity(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	scores, err := s.session.BestScores()
	if err != nil && !errors.Is(err, report.ErrReportUnreadable) {
		return toolError("failed to read output file: %v", err), nil
	}

	lines := report.SummaryLines(scores)
	if len(lines) == 0 {
		msg := report.NoScoresMessage
		if err != nil {
			msg = fmt.Sprintf("%s (%v)", msg, err)
		}
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		}, nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: strings.Join(lines, "\n")}},
	}, nil
}

func (s *Server) handleTableInfo(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	data, err := json.MarshalIndent(s.session.Info(), "", "  ")
	if err != nil {
		return toolError("failed to encode table info: %v", err), nil
	}
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: string(data)}},
	}, nil
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// ABOUTME: Tests for word similarity MCP tool handlers.
// ABOUTME: Covers find_similar_words, highest_similarity, and table_info.
package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/wordsim/internal/session"
)

func makeSearchServer(t *testing.T) (*Server, string) {
	t.Helper()
	tmpDir := t.TempDir()
	embPath := filepath.Join(tmpDir, "emb.txt")
	if err := os.WriteFile(embPath, []byte("cat, 1, 0\ndog, 0.9, 0.436\ncar, 0, 1\n"), 0644); err != nil {
		t.Fatalf("failed to write embeddings: %v", err)
	}
	outPath := filepath.Join(tmpDir, "out.txt")

	sess, err := session.New(session.Options{
		EmbeddingsPath: embPath,
		OutputPath:     outPath,
		Dimension:      2,
		Threshold:      0.75,
	})
	if err != nil {
		t.Fatalf("session.New error: %v", err)
	}
	if err := sess.LoadTable(); err != nil {
		t.Fatalf("LoadTable error: %v", err)
	}

	server, err := NewServer(sess)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return server, outPath
}

func callTool(t *testing.T, s *Server, name string, args interface{}) *gomcp.CallToolResult {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}

	req := &gomcp.CallToolRequest{
		Params: &gomcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argsJSON,
		},
	}
	ctx := context.Background()

	var result *gomcp.CallToolResult
	switch name {
	case "find_similar_words":
		result, err = s.handleFindSimilarWords(ctx, req)
	case "highest_similarity":
		result, err = s.handleHighestSimilarity(ctx, req)
	case "table_info":
		result, err = s.handleTableInfo(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return result
}

func getTextContent(result *gomcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if tc, ok := result.Content[0].(*gomcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestFindSimilarWords(t *testing.T) {
	s, outPath := makeSearchServer(t)

	result := callTool(t, s, "find_similar_words", map[string]interface{}{
		"words": []string{"CAT"},
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}

	text := getTextContent(result)
	if !strings.Contains(text, "The most similar word to 'cat' is 'dog'") {
		t.Errorf("expected best match line, got: %s", text)
	}
	if !strings.Contains(text, "written to the output file") {
		t.Errorf("expected write confirmation, got: %s", text)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected output file to exist: %v", err)
	}
}

func TestFindSimilarWordsNoWrite(t *testing.T) {
	s, outPath := makeSearchServer(t)

	result := callTool(t, s, "find_similar_words", map[string]interface{}{
		"words": []string{"cat"},
		"write": false,
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("expected no output file, got err=%v", err)
	}
}

func TestFindSimilarWordsThresholdOverride(t *testing.T) {
	s, _ := makeSearchServer(t)

	result := callTool(t, s, "find_similar_words", map[string]interface{}{
		"words":     []string{"cat"},
		"threshold": 0.95,
		"write":     false,
	})
	text := getTextContent(result)
	if !strings.Contains(text, "No similar words found") {
		t.Errorf("expected no matches at 0.95, got: %s", text)
	}
	if !strings.Contains(text, "similarity score > 0.95:") {
		t.Errorf("expected header to show overridden threshold, got: %s", text)
	}
}

func TestFindSimilarWordsValidation(t *testing.T) {
	s, _ := makeSearchServer(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"no words", map[string]interface{}{"words": []string{}}, "at least one word"},
		{"blank words", map[string]interface{}{"words": []string{" ", ""}}, "at least one word"},
		{"bad threshold", map[string]interface{}{"words": []string{"cat"}, "threshold": 2}, "threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, s, "find_similar_words", tt.args)
			if !result.IsError {
				t.Fatal("expected error result")
			}
			if !strings.Contains(getTextContent(result), tt.want) {
				t.Errorf("expected %q in error, got: %s", tt.want, getTextContent(result))
			}
		})
	}
}

func TestHighestSimilarity(t *testing.T) {
	s, _ := makeSearchServer(t)

	callTool(t, s, "find_similar_words", map[string]interface{}{
		"words": []string{"cat", "car"},
	})

	result := callTool(t, s, "highest_similarity", map[string]interface{}{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	text := getTextContent(result)
	if !strings.HasPrefix(text, "Word: cat, Highest Similarity: 0.899") {
		t.Errorf("expected cat summary, got: %s", text)
	}
	if strings.Contains(text, "Word: car") {
		t.Errorf("car had no matches and should not be listed: %s", text)
	}
}

func TestHighestSimilarityNoOutput(t *testing.T) {
	s, _ := makeSearchServer(t)

	result := callTool(t, s, "highest_similarity", map[string]interface{}{})
	if result.IsError {
		t.Fatalf("missing output file should not be a tool error: %s", getTextContent(result))
	}
	if !strings.Contains(getTextContent(result), "No similarity scores found") {
		t.Errorf("expected empty message, got: %s", getTextContent(result))
	}
}

func TestTableInfo(t *testing.T) {
	s, _ := makeSearchServer(t)

	result := callTool(t, s, "table_info", map[string]interface{}{})
	var info session.Info
	if err := json.Unmarshal([]byte(getTextContent(result)), &info); err != nil {
		t.Fatalf("expected JSON info, got %q: %v", getTextContent(result), err)
	}
	if info.Entries != 3 || info.Dimension != 2 || !info.Loaded {
		t.Errorf("unexpected info: %+v", info)
	}
}

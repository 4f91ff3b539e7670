package mcp_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/designlint/designlint/internal/adapters/inbound/mcp"
	"github.com/designlint/designlint/internal/adapters/outbound/document"
	"github.com/designlint/designlint/internal/adapters/outbound/storage"
	"github.com/designlint/designlint/internal/domain"
)

func newServer(t *testing.T) *server.MCPServer {
	t.Helper()
	doc, err := document.Load(filepath.Join("../../../../testdata/documents", "card.json"))
	require.NoError(t, err)
	return mcpadapter.NewDesignLintMCPServer(doc, storage.New(t.TempDir()), domain.DefaultConfig())
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	tool, ok := s.ListTools()[name]
	require.True(t, ok, "tool %q should be registered", name)

	req := mcplib.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func text(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return tc.Text
}

func responses(t *testing.T, result *mcplib.CallToolResult) []domain.Response {
	t.Helper()
	require.False(t, result.IsError, text(t, result))
	var out []domain.Response
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &out))
	return out
}

func TestNewDesignLintMCPServer(t *testing.T) {
	s := newServer(t)
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := newServer(t)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"designlint_run",
		"designlint_update_errors",
		"designlint_fetch_layer",
		"designlint_select_layers",
		"designlint_update_storage",
		"designlint_reset_storage",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}

func TestRunTool(t *testing.T) {
	s := newServer(t)

	out := responses(t, callTool(t, s, "designlint_run", nil))
	require.Len(t, out, 2)
	assert.Equal(t, domain.ResponseComplete, out[0].Type)
	assert.NotEmpty(t, out[0].Errors)
	assert.Equal(t, domain.ResponseFetchedStorage, out[1].Type)
}

func TestUpdateErrorsToolKeepsSession(t *testing.T) {
	s := newServer(t)

	before := responses(t, callTool(t, s, "designlint_update_errors", nil))
	require.Len(t, before, 1)
	assert.Empty(t, before[0].Errors)

	callTool(t, s, "designlint_run", nil)
	after := responses(t, callTool(t, s, "designlint_update_errors", nil))
	require.Len(t, after, 1)
	assert.NotEmpty(t, after[0].Errors)
}

func TestFetchLayerTool(t *testing.T) {
	s := newServer(t)

	out := responses(t, callTool(t, s, "designlint_fetch_layer", map[string]any{"id": "1:3"}))
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Layer)
	assert.Equal(t, "Title", out[0].Layer.Name)

	missing := callTool(t, s, "designlint_fetch_layer", map[string]any{"id": "nope"})
	assert.True(t, missing.IsError)
	assert.Contains(t, text(t, missing), "node not found")

	noArg := callTool(t, s, "designlint_fetch_layer", map[string]any{})
	assert.True(t, noArg.IsError)
}

func TestSelectLayersTool(t *testing.T) {
	s := newServer(t)

	result := callTool(t, s, "designlint_select_layers", map[string]any{"ids": "1:2, 1:3"})
	assert.False(t, result.IsError)
	assert.Contains(t, text(t, result), "select-multiple-layers")
}

func TestStorageTools(t *testing.T) {
	s := newServer(t)

	result := callTool(t, s, "designlint_update_storage", map[string]any{"storage_array": `["1:2:fill"]`})
	assert.False(t, result.IsError)

	out := responses(t, callTool(t, s, "designlint_run", nil))
	require.Len(t, out, 2)
	require.NotNil(t, out[1].Storage)
	assert.Equal(t, `["1:2:fill"]`, *out[1].Storage)

	reset := responses(t, callTool(t, s, "designlint_reset_storage", nil))
	require.Len(t, reset, 1)
	assert.Equal(t, domain.ResponseResetStorage, reset[0].Type)
	require.NotNil(t, reset[0].Storage)
	assert.Equal(t, "[]", *reset[0].Storage)

	bad := callTool(t, s, "designlint_update_storage", map[string]any{"storage_array": "[oops"})
	assert.True(t, bad.IsError)
}

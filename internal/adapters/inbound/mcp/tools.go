package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/designlint/designlint/internal/domain"
)

// registerTools registers all designlint MCP tools on the given server.
func registerTools(s *server.MCPServer, sess *session) {
	// 1. designlint_run
	s.AddTool(
		mcplib.NewTool("designlint_run",
			mcplib.WithDescription("Lint the current selection. Returns the layer tree, per-layer errors, and the stored ignored errors"),
		),
		handleCommand(sess, func(mcplib.CallToolRequest) (domain.Command, error) {
			return domain.Command{Type: domain.CommandRunApp}, nil
		}),
	)

	// 2. designlint_update_errors
	s.AddTool(
		mcplib.NewTool("designlint_update_errors",
			mcplib.WithDescription("Re-lint the layers of the last run after edits"),
		),
		handleCommand(sess, func(mcplib.CallToolRequest) (domain.Command, error) {
			return domain.Command{Type: domain.CommandUpdateErrors}, nil
		}),
	)

	// 3. designlint_fetch_layer
	s.AddTool(
		mcplib.NewTool("designlint_fetch_layer",
			mcplib.WithDescription("Select a layer, bring it into view, and return its details"),
			mcplib.WithString("id",
				mcplib.Required(),
				mcplib.Description("Layer identifier"),
			),
		),
		handleCommand(sess, func(request mcplib.CallToolRequest) (domain.Command, error) {
			id, err := request.RequireString("id")
			if err != nil {
				return domain.Command{}, err
			}
			return domain.Command{Type: domain.CommandFetchLayerData, ID: id}, nil
		}),
	)

	// 4. designlint_select_layers
	s.AddTool(
		mcplib.NewTool("designlint_select_layers",
			mcplib.WithDescription("Select several layers and bring them into view"),
			mcplib.WithString("ids",
				mcplib.Required(),
				mcplib.Description("Comma-separated layer identifiers"),
			),
		),
		handleCommand(sess, func(request mcplib.CallToolRequest) (domain.Command, error) {
			ids, err := request.RequireString("ids")
			if err != nil {
				return domain.Command{}, err
			}
			return domain.Command{Type: domain.CommandSelectMultipleLayers, NodeArray: splitCSV(ids)}, nil
		}),
	)

	// 5. designlint_update_storage
	s.AddTool(
		mcplib.NewTool("designlint_update_storage",
			mcplib.WithDescription("Replace the stored ignored errors"),
			mcplib.WithString("storage_array",
				mcplib.Required(),
				mcplib.Description(`JSON array of ignored error keys, e.g. ["1:2:fill"]`),
			),
		),
		handleCommand(sess, func(request mcplib.CallToolRequest) (domain.Command, error) {
			raw, err := request.RequireString("storage_array")
			if err != nil {
				return domain.Command{}, err
			}
			return domain.Command{Type: domain.CommandUpdateStorage, StorageArray: json.RawMessage(raw)}, nil
		}),
	)

	// 6. designlint_reset_storage
	s.AddTool(
		mcplib.NewTool("designlint_reset_storage",
			mcplib.WithDescription("Overwrite the ignored errors from settings and echo the stored value"),
			mcplib.WithString("storage_array", mcplib.Description("JSON array to store (default: [])")),
		),
		handleCommand(sess, func(request mcplib.CallToolRequest) (domain.Command, error) {
			raw, _ := request.GetArguments()["storage_array"].(string)
			if strings.TrimSpace(raw) == "" {
				raw = "[]"
			}
			return domain.Command{Type: domain.CommandUpdateStorageFromSettings, StorageArray: json.RawMessage(raw)}, nil
		}),
	)
}

type commandBuilder func(request mcplib.CallToolRequest) (domain.Command, error)

func handleCommand(sess *session, build commandBuilder) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cmd, err := build(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		responses, err := sess.do(ctx, cmd)
		if err != nil {
			return errorResult(fmt.Sprintf("%s failed: %v", cmd.Type, err)), nil
		}
		if cmd.Type == domain.CommandRunApp && len(responses) == 0 {
			return errorResult(fmt.Sprintf("%v: select a frame or multiple frames first", domain.ErrEmptySelection)), nil
		}
		for _, r := range responses {
			if r.Type == domain.ResponseError {
				return errorResult(r.Error), nil
			}
		}
		if len(responses) == 0 {
			return textResult(fmt.Sprintf("%s done", cmd.Type)), nil
		}
		return jsonResult(responses)
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// jsonResult marshals v as indented JSON into a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/domain/lint"
)

// registerResources registers all designlint MCP resources on the given server.
func registerResources(s *server.MCPServer, sess *session) {
	// 1. designlint://document - full layer tree
	s.AddResource(
		mcplib.NewResource(
			"designlint://document",
			"Document",
			mcplib.WithResourceDescription("Layer tree of the whole document"),
			mcplib.WithMIMEType("application/json"),
		),
		handleDocumentResource(sess),
	)

	// 2. designlint://ignored - stored ignored errors
	s.AddResource(
		mcplib.NewResource(
			"designlint://ignored",
			"Ignored Errors",
			mcplib.WithResourceDescription("Ignored error keys from client storage"),
			mcplib.WithMIMEType("application/json"),
		),
		handleIgnoredResource(sess),
	)

	// 3. designlint://layers/{id} - single layer details (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"designlint://layers/{id}",
			"Layer",
			mcplib.WithTemplateDescription("Details of one layer, without changing the selection"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleLayerResource(sess),
	)
}

func handleDocumentResource(sess *session) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		doc := struct {
			Name string                  `json:"name"`
			Tree []domain.SerializedNode `json:"tree"`
		}{sess.doc.Name(), lint.Serialize(sess.doc.Roots())}
		return jsonResource(request.Params.URI, doc)
	}
}

func handleIgnoredResource(sess *session) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		stored, _, err := sess.storage.Get(ctx, sess.cfg.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("reading ignored errors: %w", err)
		}
		ignored, err := domain.ParseIgnoreSet(stored)
		if err != nil {
			return nil, err
		}
		return jsonResource(request.Params.URI, ignored.Keys())
	}
}

func handleLayerResource(sess *session) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("layer id is required")
		}

		node, err := sess.doc.NodeByID(id)
		if err != nil {
			return nil, err
		}
		return jsonResource(request.Params.URI, domain.NewLayerData(node))
	}
}

// templateArg unwraps a URI template argument, which the server may deliver
// as a string or a single-element list.
func templateArg(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
		}
	}
	return ""
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

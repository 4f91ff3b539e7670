package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/designlint/designlint/internal/application"
	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/logger"
)

// Document is the host the MCP server lints.
type Document interface {
	domain.Host
	Name() string
	Roots() []*domain.Node
}

// session serializes tool calls through one controller so the lint session
// survives between calls.
type session struct {
	doc     Document
	storage domain.ClientStorage
	cfg     domain.Config

	mu   sync.Mutex
	out  *application.Collector
	ctrl *application.Controller
}

func newSession(doc Document, storage domain.ClientStorage, cfg domain.Config) *session {
	out := &application.Collector{}
	return &session{
		doc:     doc,
		storage: storage,
		cfg:     cfg.WithDefaults(),
		out:     out,
		ctrl: application.NewController(doc, storage, out, cfg,
			application.WithLogger(logger.For(logger.ComponentMCP))),
	}
}

// do handles cmd and returns every response it produced, including the
// storage follow-up of run-app.
func (s *session) do(ctx context.Context, cmd domain.Command) ([]domain.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.out.Drain()
	err := s.ctrl.Handle(ctx, cmd)
	s.ctrl.Wait()
	responses := s.out.Drain()
	if responses == nil {
		responses = []domain.Response{}
	}
	return responses, err
}

// NewDesignLintMCPServer creates an MCP server with all designlint tools and
// resources registered over doc.
func NewDesignLintMCPServer(doc Document, storage domain.ClientStorage, cfg domain.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"designlint",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	sess := newSession(doc, storage, cfg)
	registerTools(s, sess)
	registerResources(s, sess)

	return s
}

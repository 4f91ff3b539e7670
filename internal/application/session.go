package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/domain/lint"
)

// Session is the node forest captured by the last run-app. Refreshes re-lint
// it without re-reading the selection. Nodes are live host nodes, so a
// refresh sees attribute edits made since the capture.
type Session struct {
	ID        string
	CreatedAt time.Time
	Roots     []*domain.Node

	lintable map[string]bool
}

// NewSession captures roots by traversing every lintable node under them.
func NewSession(roots []*domain.Node) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		lintable:  make(map[string]bool),
	}
	s.Roots = lint.Traverse(roots, func(n *domain.Node) {
		s.lintable[n.ID] = true
	})
	return s
}

// Contains reports whether id was reachable when the session was captured.
func (s *Session) Contains(id string) bool {
	return s.lintable[id]
}

// Size is the number of lintable nodes captured.
func (s *Session) Size() int {
	return len(s.lintable)
}

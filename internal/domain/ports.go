package domain

import (
	"context"
	"time"
)

// Host is the design document the engine reads nodes from. Implementations
// own the scene graph; the engine never mutates node attributes.
type Host interface {
	// NodeByID resolves an identifier, wrapping ErrNodeNotFound on a miss.
	NodeByID(id string) (*Node, error)
	Selection() []*Node
	SetSelection(nodes []*Node)
	ScrollAndZoomIntoView(nodes []*Node)
	Notify(message string, timeout time.Duration)
}

// ClientStorage persists string values by key.
type ClientStorage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Responder delivers outbound responses to the presentation layer. It must be
// safe for concurrent use.
type Responder interface {
	Post(ctx context.Context, resp Response) error
}

// ConfigLoader loads the project configuration.
type ConfigLoader interface {
	Load(projectPath string) (Config, error)
}

// RevisionReader reports the version-control revision holding a document.
type RevisionReader interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
	Modified(path string) (bool, error)
}

// RunHistory appends and reads lint run summaries.
type RunHistory interface {
	Save(entry RunEntry) error
	Load(document string) ([]RunEntry, error)
}

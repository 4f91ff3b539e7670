// Package document loads exported design documents and serves them as the
// engine's host.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/logger"
)

// ErrInvalidDocument wraps structural problems found while indexing.
var ErrInvalidDocument = errors.New("invalid document")

// File is the on-disk shape of an exported document.
type File struct {
	Name      string         `json:"name"                yaml:"name"`
	Selection []string       `json:"selection,omitempty" yaml:"selection,omitempty"`
	Nodes     []*domain.Node `json:"nodes"               yaml:"nodes"`
}

// Notification is one toast shown by the host.
type Notification struct {
	Message string        `json:"message"`
	Timeout time.Duration `json:"timeout"`
}

// Document implements domain.Host over an in-memory node tree.
type Document struct {
	path  string
	name  string
	roots []*domain.Node
	index map[string]*domain.Node
	log   *zap.SugaredLogger

	mu            sync.Mutex
	selection     []*domain.Node
	viewport      []*domain.Node
	notifications []Notification
	onNotify      func(Notification)
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the document's logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(d *Document) { d.log = l }
}

// OnNotify registers a callback run for every notification.
func OnNotify(fn func(Notification)) Option {
	return func(d *Document) { d.onNotify = fn }
}

// Load reads a document from path. Files ending in .yaml or .yml are decoded
// as YAML, everything else as JSON.
func Load(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	var f File
	if isYAML(path) {
		err = yaml.Unmarshal(data, &f)
	} else {
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	d, err := New(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	d.path = path
	return d, nil
}

// New indexes f. Node identifiers must be unique and the stored selection
// must resolve.
func New(f File, opts ...Option) (*Document, error) {
	d := &Document{
		name:  f.Name,
		roots: f.Nodes,
		index: make(map[string]*domain.Node),
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	stack := append([]*domain.Node(nil), f.Nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			return nil, fmt.Errorf("%w: null node", ErrInvalidDocument)
		}
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node %q has no id", ErrInvalidDocument, n.Name)
		}
		if _, dup := d.index[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrInvalidDocument, n.ID)
		}
		d.index[n.ID] = n
		stack = append(stack, n.Children...)
	}

	for _, id := range f.Selection {
		n, err := d.NodeByID(id)
		if err != nil {
			return nil, fmt.Errorf("%w: selection: %w", ErrInvalidDocument, err)
		}
		d.selection = append(d.selection, n)
	}

	d.log.Debugw("Indexed document", "name", d.name, "roots", len(d.roots), "nodes", len(d.index))
	return d, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (d *Document) Name() string { return d.name }

// Path is empty for documents not read from disk.
func (d *Document) Path() string { return d.path }

// Roots returns the top-level nodes of the page.
func (d *Document) Roots() []*domain.Node { return d.roots }

// Len returns the number of indexed nodes.
func (d *Document) Len() int { return len(d.index) }

func (d *Document) NodeByID(id string) (*domain.Node, error) {
	n, ok := d.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	return n, nil
}

func (d *Document) Selection() []*domain.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*domain.Node(nil), d.selection...)
}

func (d *Document) SetSelection(nodes []*domain.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = append([]*domain.Node(nil), nodes...)
}

// SelectAll selects every top-level node.
func (d *Document) SelectAll() {
	d.SetSelection(d.roots)
}

func (d *Document) ScrollAndZoomIntoView(nodes []*domain.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = append([]*domain.Node(nil), nodes...)
}

// Viewport returns the nodes last scrolled into view.
func (d *Document) Viewport() []*domain.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*domain.Node(nil), d.viewport...)
}

func (d *Document) Notify(message string, timeout time.Duration) {
	n := Notification{Message: message, Timeout: timeout}

	d.mu.Lock()
	d.notifications = append(d.notifications, n)
	fn := d.onNotify
	d.mu.Unlock()

	d.log.Infow(message, "timeout", timeout)
	if fn != nil {
		fn(n)
	}
}

// Notifications returns every notification shown so far, oldest first.
func (d *Document) Notifications() []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Notification(nil), d.notifications...)
}

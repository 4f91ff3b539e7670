package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/domain/lint"
	"github.com/designlint/designlint/internal/logger"
)

const (
	layerSelectedTimeout  = 750 * time.Millisecond
	layersSelectedTimeout = 1000 * time.Millisecond
	storageClearedTimeout = 1000 * time.Millisecond
	emptySelectionTimeout = 2000 * time.Millisecond
	emptySelectionMessage = "Select a frame or multiple frames"
	layersSelectedMessage = "Multiple layers selected"
	storageClearedMessage = "Cleared ignored errors"
	defaultStoragePayload = "[]"
)

// Controller handles presentation-layer commands one at a time against a
// host document. It owns the lint session.
type Controller struct {
	host      domain.Host
	storage   domain.ClientStorage
	responder domain.Responder
	linter    *lint.Linter
	cfg       domain.Config
	log       *zap.SugaredLogger

	mu      sync.Mutex
	session *Session
	pending sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Controller) { c.log = l }
}

func NewController(
	host domain.Host,
	storage domain.ClientStorage,
	responder domain.Responder,
	cfg domain.Config,
	opts ...Option,
) *Controller {
	cfg = cfg.WithDefaults()
	c := &Controller{
		host:      host,
		storage:   storage,
		responder: responder,
		linter:    lint.New(cfg),
		cfg:       cfg,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the current lint session, or nil before the first run.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Handle processes cmd to completion. Only the ignored-errors read started
// by run-app outlives the call; use Wait to block on it.
func (c *Controller) Handle(ctx context.Context, cmd domain.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Debugw("Handling command", "type", cmd.Type)

	switch cmd.Type {
	case domain.CommandFetchLayerData:
		return c.fetchLayerData(ctx, cmd.ID)
	case domain.CommandUpdateErrors:
		return c.updateErrors(ctx)
	case domain.CommandUpdateStorage:
		return c.updateStorage(ctx, cmd.StorageArray)
	case domain.CommandUpdateStorageFromSettings:
		return c.updateStorageFromSettings(ctx, cmd.StorageArray)
	case domain.CommandSelectMultipleLayers:
		return c.selectMultipleLayers(cmd.NodeArray)
	case domain.CommandRunApp:
		return c.runApp(ctx)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownCommand, cmd.Type)
	}
}

// Serve handles commands from in, in arrival order, until in is closed or
// ctx is done. Handler failures are reported as error responses.
func (c *Controller) Serve(ctx context.Context, in <-chan domain.Command) error {
	defer c.Wait()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-in:
			if !ok {
				return nil
			}
			if err := c.Handle(ctx, cmd); err != nil {
				c.log.Warnw("Command failed", "type", cmd.Type, "error", err)
				_ = c.post(ctx, domain.ErrorResponse(err))
			}
		}
	}
}

// Wait blocks until every outstanding ignored-errors read has responded.
func (c *Controller) Wait() {
	c.pending.Wait()
}

func (c *Controller) fetchLayerData(ctx context.Context, id string) error {
	node, err := c.host.NodeByID(id)
	if err != nil {
		return fmt.Errorf("fetching layer: %w", err)
	}

	c.log.Debugw("Fetching layer",
		"id", id,
		"inSession", c.session != nil && c.session.Contains(id))

	layers := []*domain.Node{node}
	c.notify(fmt.Sprintf("Layer %s selected", node.Name), layerSelectedTimeout)
	c.host.SetSelection(layers)
	c.host.ScrollAndZoomIntoView(layers)

	data := domain.NewLayerData(node)
	return c.post(ctx, domain.Response{Type: domain.ResponseFetchedLayer, Layer: &data})
}

func (c *Controller) updateErrors(ctx context.Context) error {
	var roots []*domain.Node
	if c.session != nil {
		roots = c.session.Roots
	}
	return c.post(ctx, domain.Response{
		Type:   domain.ResponseUpdatedErrors,
		Errors: c.linter.Lint(roots),
	})
}

func (c *Controller) updateStorage(ctx context.Context, raw json.RawMessage) error {
	_, err := c.persistIgnored(ctx, raw)
	return err
}

func (c *Controller) updateStorageFromSettings(ctx context.Context, raw json.RawMessage) error {
	stored, err := c.persistIgnored(ctx, raw)
	if err != nil {
		return err
	}
	if err := c.post(ctx, domain.Response{Type: domain.ResponseResetStorage, Storage: &stored}); err != nil {
		return err
	}
	c.notify(storageClearedMessage, storageClearedTimeout)
	return nil
}

func (c *Controller) persistIgnored(ctx context.Context, raw json.RawMessage) (string, error) {
	value, err := encodeStorage(raw)
	if err != nil {
		return "", err
	}
	if err := c.storage.Set(ctx, c.cfg.StorageKey, value); err != nil {
		return "", fmt.Errorf("storing ignored errors: %w", err)
	}
	return value, nil
}

func (c *Controller) selectMultipleLayers(ids []string) error {
	nodes := make([]*domain.Node, 0, len(ids))
	for _, id := range ids {
		node, err := c.host.NodeByID(id)
		if err != nil {
			return fmt.Errorf("selecting layers: %w", err)
		}
		nodes = append(nodes, node)
	}

	c.host.SetSelection(nodes)
	c.host.ScrollAndZoomIntoView(nodes)
	c.notify(layersSelectedMessage, layersSelectedTimeout)
	return nil
}

func (c *Controller) runApp(ctx context.Context) error {
	selection := c.host.Selection()
	if len(selection) == 0 {
		c.notify(emptySelectionMessage, emptySelectionTimeout)
		return nil
	}

	c.session = NewSession(selection)
	c.log.Infow("Started lint session",
		"session", c.session.ID,
		"roots", len(c.session.Roots),
		"nodes", c.session.Size())

	err := c.post(ctx, domain.Response{
		Type:   domain.ResponseComplete,
		Tree:   lint.Serialize(c.session.Roots),
		Errors: c.linter.Lint(c.session.Roots),
	})
	if err != nil {
		return err
	}

	c.fetchIgnored(context.WithoutCancel(ctx))
	return nil
}

// fetchIgnored reads the ignored-errors set and posts it independently of
// the command that asked for it.
func (c *Controller) fetchIgnored(ctx context.Context) {
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()

		value, found, err := c.storage.Get(ctx, c.cfg.StorageKey)
		if err != nil {
			c.log.Errorw("Reading ignored errors failed", "key", c.cfg.StorageKey, "error", err)
			_ = c.post(ctx, domain.ErrorResponse(fmt.Errorf("reading ignored errors: %w", err)))
			return
		}

		resp := domain.Response{Type: domain.ResponseFetchedStorage}
		if found {
			resp.Storage = &value
		}
		_ = c.post(ctx, resp)
	}()
}

func (c *Controller) notify(message string, timeout time.Duration) {
	c.log.Infow("Notify", "message", message)
	c.host.Notify(message, timeout)
}

func (c *Controller) post(ctx context.Context, resp domain.Response) error {
	if err := c.responder.Post(ctx, resp); err != nil {
		c.log.Warnw("Posting response failed", "type", resp.Type, "error", err)
		return fmt.Errorf("posting %s: %w", resp.Type, err)
	}
	return nil
}

// encodeStorage compacts the presentation layer's array into the stored
// string. A missing array stores an empty one.
func encodeStorage(raw json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return defaultStoragePayload, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("encoding storage array: %w", err)
	}
	return buf.String(), nil
}

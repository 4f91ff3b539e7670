package application

import (
	"context"
	"sync"

	"github.com/designlint/designlint/internal/domain"
)

// Collector is a domain.Responder that keeps every response in memory.
type Collector struct {
	mu        sync.Mutex
	responses []domain.Response
}

func (c *Collector) Post(_ context.Context, resp domain.Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, resp)
	return nil
}

// Responses returns the collected responses in posting order.
func (c *Collector) Responses() []domain.Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Response(nil), c.responses...)
}

// Drain returns the collected responses and forgets them.
func (c *Collector) Drain() []domain.Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.responses
	c.responses = nil
	return out
}

// Last returns the most recent response of type t.
func (c *Collector) Last(t domain.ResponseType) (domain.Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.responses) - 1; i >= 0; i-- {
		if c.responses[i].Type == t {
			return c.responses[i], true
		}
	}
	return domain.Response{}, false
}

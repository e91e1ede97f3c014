package addlist

import (
	"fmt"
	"sync"
	"time"
)

// registry tracks the live page contexts by id.
type registry struct {
	mu    sync.RWMutex
	pages map[string]*Context
}

func newRegistry() *registry {
	return &registry{pages: make(map[string]*Context)}
}

func (r *registry) add(c *Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[c.id] = c
	return len(r.pages)
}

func (r *registry) remove(c *Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pages, c.id)
	return len(r.pages)
}

func (r *registry) lookup(id string) (*Context, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.pages[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("ctx '%s': %w", id, ErrContextNotFound)
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pages)
}

// orphans returns pages older than ttl whose SSE stream never connected.
func (r *registry) orphans(ttl time.Duration, now time.Time) []*Context {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Context
	for _, c := range r.pages {
		if !c.sseConnected.Load() && now.Sub(c.createdAt) > ttl {
			out = append(out, c)
		}
	}
	return out
}

// takeAll empties the registry and returns what it held.
func (r *registry) takeAll() []*Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Context, 0, len(r.pages))
	for _, c := range r.pages {
		out = append(out, c)
	}
	r.pages = make(map[string]*Context)
	return out
}

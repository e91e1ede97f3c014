package addlist

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ryanhamamura/addlist/h"
	"golang.org/x/time/rate"
)

// Context is the live bridge between Go state and one browser tab.
//
// A page Context owns the SSE patch queue, the action table and the
// subscriptions. Components get their own Context, and with it their own
// view and element id, but register actions and queue patches on the page.
type Context struct {
	id     string
	route  string
	app    *App
	view   func() h.H
	parent *Context

	mu         sync.RWMutex
	components map[string]*Context
	actions    map[string]action
	reqCtx     context.Context

	// actionMu serializes actions and page init on one page.
	actionMu sync.Mutex
	limiter  *rate.Limiter
	patches  *patchQueue
	csrf     string

	sseConnected atomic.Bool
	createdAt    time.Time
	disposeOnce  sync.Once
	disposed     chan struct{}

	subsMu sync.Mutex
	subs   []Subscription
}

// ID returns the id of this context. It is empty while a page init func is
// being panic-checked at registration.
func (c *Context) ID() string {
	return c.id
}

// Log returns the app logger tagged with this context's id.
func (c *Context) Log() *zerolog.Logger {
	lc := c.app.logger.With()
	if c.id != "" {
		lc = lc.Str("ctx", c.id)
	}
	l := lc.Logger()
	return &l
}

// View defines the UI rendered by this context. The returned node is wrapped
// in a div carrying the context id so Sync can morph it in place.
func (c *Context) View(f func() h.H) {
	if f == nil {
		panic("nil viewfn")
	}
	c.view = func() h.H { return h.Div(h.ID(c.id), f()) }
}

// Component runs initCtx on a new subcontext and returns its view func, to be
// placed in the parent's view.
//
// Example:
//
//	v.Page("/", func(c *addlist.Context) {
//		left := c.Component(widget.Component(list))
//		right := c.Component(widget.Component(other))
//		c.View(func() h.H { return h.Div(left(), right()) })
//	})
func (c *Context) Component(initCtx func(c *Context)) func() h.H {
	p := c.page()
	// components built during the panic check keep the empty id
	id := ""
	if c.id != "" {
		id = c.id + "-c" + genRandID()
	}
	comp := &Context{
		id:        id,
		route:     c.route,
		app:       c.app,
		parent:    p,
		createdAt: time.Now(),
		disposed:  p.disposed,
	}
	initCtx(comp)
	if comp.view == nil {
		panic(fmt.Sprintf("component '%s' has no view", comp.id))
	}
	p.mu.Lock()
	p.components[comp.id] = comp
	p.mu.Unlock()
	return comp.view
}

func (c *Context) page() *Context {
	if c.parent != nil {
		return c.parent
	}
	return c
}

// Action registers f on the page and returns its trigger.
//
// Example:
//
//	add := c.Action(func() {
//		list.Add()
//		c.Sync()
//	})
//	c.View(func() h.H {
//		return h.Button(h.Text("Add"), add.OnClick())
//	})
func (c *Context) Action(f func(), opts ...ActionOption) *ActionTrigger {
	id := genRandID()
	if f == nil {
		c.Log().Error().Str("action", id).Msg("nil action func not registered")
		return nil
	}
	a := action{run: f}
	for _, opt := range opts {
		opt(&a)
	}

	p := c.page()
	p.mu.Lock()
	p.actions[id] = a
	p.mu.Unlock()
	return &ActionTrigger{id: id}
}

func (c *Context) lookupAction(id string) (action, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if a, ok := c.actions[id]; ok {
		return a, nil
	}
	return action{}, fmt.Errorf("action '%s': %w", id, ErrActionNotFound)
}

// withRequest runs fn while ctx is the request behind Session. Calls on one
// page never overlap, so a concurrent action cannot swap the request out from
// under fn.
func (c *Context) withRequest(ctx context.Context, fn func()) {
	p := c.page()
	p.actionMu.Lock()
	defer p.actionMu.Unlock()

	p.mu.Lock()
	p.reqCtx = ctx
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.reqCtx = nil
		p.mu.Unlock()
	}()
	fn()
}

func (c *Context) requestContext() context.Context {
	p := c.page()
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.reqCtx
}

// Sync renders the view and queues it for the page's SSE stream.
func (c *Context) Sync() {
	if c.view == nil {
		c.Log().Warn().Msg("sync skipped: no view")
		return
	}
	var b bytes.Buffer
	if err := c.view().Render(&b); err != nil {
		c.Log().Error().Err(err).Msg("sync render failed")
		return
	}
	c.page().patches.push(c.id, b.String())
}

// Session returns the session of the request currently served on this page.
// It only holds data inside an action or the page's init func.
func (c *Context) Session() Session {
	return Session{ctx: c.requestContext(), sm: c.app.sessionManager}
}

// Publish sends data on subject through the app's PubSub.
func (c *Context) Publish(subject string, data []byte) error {
	if c.id == "" {
		return nil
	}
	if c.app.pubsub == nil {
		return ErrNoPubSub
	}
	return c.app.pubsub.Publish(subject, data)
}

// Subscribe registers handler for subject. The subscription is released when
// the page is disposed.
func (c *Context) Subscribe(subject string, handler func(data []byte)) (Subscription, error) {
	if c.id == "" {
		return nil, nil
	}
	if c.app.pubsub == nil {
		return nil, ErrNoPubSub
	}
	sub, err := c.app.pubsub.Subscribe(subject, handler)
	if err != nil {
		return nil, fmt.Errorf("subscribe '%s': %w", subject, err)
	}
	p := c.page()
	p.subsMu.Lock()
	p.subs = append(p.subs, sub)
	p.subsMu.Unlock()
	return sub, nil
}

// dispose releases subscriptions and closes the disposed channel so an open
// SSE loop returns. Safe to call more than once.
func (c *Context) dispose() {
	c.disposeOnce.Do(func() {
		c.subsMu.Lock()
		subs := c.subs
		c.subs = nil
		c.subsMu.Unlock()
		for _, s := range subs {
			if err := s.Unsubscribe(); err != nil {
				c.Log().Warn().Err(err).Msg("unsubscribe failed")
			}
		}
		close(c.disposed)
	})
}

func newContext(id string, route string, v *App) *Context {
	if v == nil {
		panic("create context failed: app pointer is nil")
	}
	return &Context{
		id:         id,
		route:      route,
		app:        v,
		components: make(map[string]*Context),
		actions:    make(map[string]action),
		limiter:    v.actionRateLimit.limiter(),
		patches:    newPatchQueue(),
		csrf:       uuid.NewString(),
		createdAt:  time.Now(),
		disposed:   make(chan struct{}),
	}
}

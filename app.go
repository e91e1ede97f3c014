// Package addlist is a small server-driven UI engine for hosting stateful Go
// widgets in the browser. Go owns all state; HTML is composed with package h
// and every re-render reaches the browser over a Datastar SSE stream.
//
// A page registers actions on its Context, renders triggers for them with
// ActionTrigger.OnClick, and calls Context.Sync after mutating state.
package addlist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	ossignal "os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/ryanhamamura/addlist/h"
)

const (
	signalCtxID = "live-ctx"
	signalCSRF  = "live-csrf"

	defaultDatastarURL   = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"
	defaultLocalDatastar = "/_datastar.js"
	defaultContextTTL    = 30 * time.Second
)

// App owns page routing, the live page registry, and the SSE and action
// endpoints.
type App struct {
	cfg             Options
	mux             *http.ServeMux
	server          *http.Server
	logger          zerolog.Logger
	pages           *registry
	head            []h.H
	sessionManager  *scs.SessionManager
	pubsub          PubSub
	actionRateLimit RateLimitConfig
	datastarPath    string
	datastarContent []byte
	datastarOnce    sync.Once
	reaperStop      chan struct{}
	shutdownOnce    sync.Once
}

// New creates an app with default configuration: Info console logging, an
// in-memory session manager and the CDN Datastar bundle.
func New() *App {
	v := &App{
		mux: http.NewServeMux(),
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			With().Timestamp().Logger().Level(zerolog.InfoLevel),
		pages:          newRegistry(),
		sessionManager: scs.New(),
		datastarPath:   defaultDatastarURL,
		cfg: Options{
			ServerAddress: ":3000",
			DocumentTitle: "Add list",
		},
	}
	v.mux.HandleFunc("GET /_sse", v.handleSSE)
	v.mux.HandleFunc("GET /_action/{id}", v.handleAction)
	v.mux.HandleFunc("POST /_session/close", v.handleSessionClose)
	return v
}

// Config applies the non-zero fields of cfg.
func (v *App) Config(cfg Options) {
	if cfg.Logger != nil {
		v.logger = *cfg.Logger
	}
	if cfg.DocumentTitle != "" {
		v.cfg.DocumentTitle = cfg.DocumentTitle
	}
	if cfg.ServerAddress != "" {
		v.cfg.ServerAddress = cfg.ServerAddress
	}
	if cfg.SessionManager != nil {
		v.sessionManager = cfg.SessionManager
	}
	if cfg.DatastarContent != nil {
		v.datastarContent = cfg.DatastarContent
		if !strings.HasPrefix(v.datastarPath, "/") {
			v.datastarPath = defaultLocalDatastar
		}
	}
	if cfg.DatastarPath != "" {
		v.datastarPath = cfg.DatastarPath
	}
	if cfg.PubSub != nil {
		v.pubsub = cfg.PubSub
	}
	if cfg.ContextTTL != 0 {
		v.cfg.ContextTTL = cfg.ContextTTL
	}
	if cfg.ActionRateLimit != (RateLimitConfig{}) {
		v.actionRateLimit = cfg.ActionRateLimit
	}
	for _, plugin := range cfg.Plugins {
		if plugin != nil {
			plugin(v)
		}
	}
}

// AppendToHead appends nodes to the head of every page document.
func (v *App) AppendToHead(elements ...h.H) {
	for _, el := range elements {
		if el != nil {
			v.head = append(v.head, el)
		}
	}
}

// Page registers a route and the init func that builds each new page Context.
// The init func is run once at registration to surface panics early; it must
// set a view.
//
// Example:
//
//	counter := widget.NewCounter(0)
//	v.Page("/", func(c *addlist.Context) {
//		widget.Mount(c, widget.NewList(counter))
//	})
func (v *App) Page(route string, initContextFn func(c *Context)) {
	v.ensureDatastarHandler()
	func() {
		defer func() {
			if err := recover(); err != nil {
				v.logger.WithLevel(zerolog.FatalLevel).Str("route", route).
					Msgf("page init func panics: %v", err)
				panic(err)
			}
		}()
		c := newContext("", route, v)
		initContextFn(c)
		if c.view == nil {
			panic(fmt.Sprintf("page '%s' has no view", route))
		}
		c.view()
		c.dispose()
	}()

	v.mux.HandleFunc("GET "+route, func(w http.ResponseWriter, r *http.Request) {
		c := newContext(genRandID(), route, v)
		c.withRequest(r.Context(), func() { initContextFn(c) })
		live := v.pages.add(c)
		c.Log().Debug().Str("route", route).Int("live", live).Msg("page opened")

		head := []h.H{h.Script(h.Type("module"), h.Src(v.datastarPath))}
		head = append(head, v.head...)
		head = append(head,
			h.Meta(h.Data("signals", fmt.Sprintf("{'%s':'%s','%s':'%s'}", signalCtxID, c.id, signalCSRF, c.csrf))),
			h.Meta(h.Data("init", "@get('/_sse')")),
			h.Meta(h.Data("init", fmt.Sprintf(`window.addEventListener('beforeunload', () => {
			navigator.sendBeacon('/_session/close', '%s');});`, c.id))),
		)
		doc := h.HTML5(h.HTML5Props{
			Title: v.cfg.DocumentTitle,
			Head:  head,
			Body:  []h.H{c.view()},
		})
		if err := doc.Render(w); err != nil {
			c.Log().Error().Err(err).Msg("render page failed")
		}
	})
}

func (v *App) closePage(c *Context) {
	c.dispose()
	live := v.pages.remove(c)
	c.Log().Debug().Int("live", live).Msg("page closed")
}

// reap closes pages whose SSE stream never connected within ttl.
func (v *App) reap(ttl time.Duration) {
	for _, c := range v.pages.orphans(ttl, time.Now()) {
		c.Log().Info().Dur("ttl", ttl).Msg("reaping page without SSE connection")
		v.closePage(c)
	}
}

func (v *App) startReaper() {
	ttl := v.cfg.ContextTTL
	if ttl < 0 {
		return
	}
	if ttl == 0 {
		ttl = defaultContextTTL
	}
	stop := make(chan struct{})
	v.reaperStop = stop
	go func() {
		ticker := time.NewTicker(max(ttl/3, 5*time.Second))
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				v.reap(ttl)
			}
		}
	}()
}

// Handler returns the root http.Handler, wrapped in the session middleware
// when a SessionManager is configured.
func (v *App) Handler() http.Handler {
	if v.sessionManager != nil {
		return v.sessionManager.LoadAndSave(v.mux)
	}
	return v.mux
}

// Start runs the HTTP server and blocks until SIGINT or SIGTERM, then shuts
// down gracefully.
func (v *App) Start() error {
	v.server = &http.Server{
		Addr:              v.cfg.ServerAddress,
		Handler:           v.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	v.startReaper()

	errCh := make(chan error, 1)
	go func() {
		errCh <- v.server.ListenAndServe()
	}()
	v.logger.Info().Str("addr", v.cfg.ServerAddress).Msg("listening")

	sigCh := make(chan os.Signal, 1)
	ossignal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer ossignal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		v.logger.Info().Stringer("signal", sig).Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
	v.Shutdown()
	return nil
}

// Shutdown closes every live page, stops the server and closes the PubSub.
// Safe to call more than once.
func (v *App) Shutdown() {
	v.shutdownOnce.Do(func() {
		if v.reaperStop != nil {
			close(v.reaperStop)
		}

		pages := v.pages.takeAll()
		for _, c := range pages {
			c.dispose()
		}

		if v.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := v.server.Shutdown(ctx); err != nil {
				v.logger.Error().Err(err).Msg("http server shutdown")
			}
		}
		if v.pubsub != nil {
			if err := v.pubsub.Close(); err != nil {
				v.logger.Error().Err(err).Msg("pubsub close")
			}
		}
		v.logger.Info().Int("pages", len(pages)).Msg("shutdown complete")
	})
}

func (v *App) ensureDatastarHandler() {
	v.datastarOnce.Do(func() {
		if v.datastarContent == nil || !strings.HasPrefix(v.datastarPath, "/") {
			return
		}
		v.mux.HandleFunc("GET "+v.datastarPath, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/javascript")
			_, _ = w.Write(v.datastarContent)
		})
	})
}

func genRandID() string {
	return xid.New().String()
}

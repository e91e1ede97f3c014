// Command addlist serves the incremental list widget over HTTP, or runs it in
// the terminal with "addlist tui".
package main

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
	"github.com/ryanhamamura/addlist"
	"github.com/ryanhamamura/addlist/h"
	"github.com/ryanhamamura/addlist/internal/config"
	"github.com/ryanhamamura/addlist/natsbus"
	"github.com/ryanhamamura/addlist/tui"
	"github.com/ryanhamamura/addlist/widget"
)

//go:embed static
var staticFiles embed.FS

const lastKeySession = "last_key"

func main() {
	cfg, err := config.Load()
	logger := newLogger(cfg.Log)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	mode := "web"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "web":
		err = runWeb(cfg, logger)
	case "tui":
		err = runTUI(cfg)
	default:
		logger.Fatal().Str("mode", mode).Msg("unknown mode, want web or tui")
	}
	if err != nil {
		logger.Fatal().Err(err).Msg(mode)
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if cfg.Dev {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			With().Timestamp().Logger().Level(level)
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
}

func listOptions(cfg config.Config) []widget.Option {
	if cfg.Widget.InertItems {
		return []widget.Option{widget.WithInertItems()}
	}
	return nil
}

func runTUI(cfg config.Config) error {
	counter := widget.NewCounter(cfg.Counter.Start)
	lists := make([]*widget.List, cfg.Widget.Instances)
	for i := range lists {
		lists[i] = widget.NewList(counter, listOptions(cfg)...)
	}
	return tui.Run(lists, tui.WithTitle(cfg.Server.Title))
}

func runWeb(cfg config.Config, logger zerolog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := scs.New()
	sessions.Cookie.Name = cfg.Session.Cookie

	opts := addlist.Options{
		ServerAddress:   cfg.Server.Address,
		DocumentTitle:   cfg.Server.Title,
		Logger:          &logger,
		SessionManager:  sessions,
		ActionRateLimit: addlist.RateLimitConfig{Rate: cfg.RateLimit.Rate, Burst: cfg.RateLimit.Burst},
		Plugins:         []addlist.Plugin{stylesheet},
	}
	if cfg.NATS.Dir != "" {
		bus, err := natsbus.New(ctx, cfg.NATS.Dir)
		if err != nil {
			return err
		}
		if _, err := bus.Subscribe(widget.SubjectAdded, logAdded(logger)); err != nil {
			_ = bus.Close()
			return err
		}
		opts.PubSub = bus
		logger.Info().Str("dir", cfg.NATS.Dir).Msg("embedded nats started")
	}

	app := addlist.New()
	app.Config(opts)

	// one counter per process, shared by every widget on every page
	counter := widget.NewCounter(cfg.Counter.Start)
	app.Page("/", widgetPage(cfg, counter, opts.PubSub != nil))

	return app.Start()
}

// widgetPage mounts cfg.Widget.Instances widgets drawing from counter. The page
// shows the last key added from this browser, kept in the session, and with
// live set it follows the newest key added on any page.
func widgetPage(cfg config.Config, counter *widget.Counter, live bool) func(*addlist.Context) {
	var mountOpts []widget.MountOption
	if live {
		mountOpts = append(mountOpts, widget.PublishAdds())
	}

	return func(c *addlist.Context) {
		lastHere, seenHere := c.Session().Int(lastKeySession)

		var latest atomic.Int64
		latest.Store(-1)
		if live {
			_, err := addlist.Subscribe(c, widget.SubjectAdded, func(evt widget.Added) {
				latest.Store(evt.Key)
				c.Sync()
			})
			if err != nil {
				c.Log().Warn().Err(err).Msg("follow added events")
			}
		}

		listOpts := append(listOptions(cfg), widget.OnAdd(func(it widget.Item) {
			c.Session().Put(lastKeySession, int(it.Key))
			c.Log().Debug().Int64("key", it.Key).Msg("item added")
		}))
		views := make([]func() h.H, cfg.Widget.Instances)
		for i := range views {
			views[i] = c.Component(widget.Component(widget.NewList(counter, listOpts...), mountOpts...))
		}

		c.View(func() h.H {
			return h.Div(
				h.If(seenHere, h.P(h.Class("last"), h.Textf("Last added in this browser: %d", lastHere))),
				h.Div(h.Map(views, func(view func() h.H) h.H { return view() })...),
				h.If(latest.Load() >= 0, h.P(h.Class("latest"), h.Textf("Newest key on any page: %d", latest.Load()))),
			)
		})
	}
}

func stylesheet(app *addlist.App) {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	app.StaticFS("/static/", sub)
	app.AppendToHead(h.Link(h.Rel("stylesheet"), h.Href("/static/widget.css")))
}

func logAdded(logger zerolog.Logger) func([]byte) {
	return func(data []byte) {
		logger.Info().RawJSON("event", data).Str("subject", widget.SubjectAdded).Msg("added")
	}
}

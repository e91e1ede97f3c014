package addlist

import (
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
)

// Plugin mutates the app at configuration time, e.g. to mount assets.
type Plugin func(v *App)

// Options configures the app. Zero values keep the current setting.
type Options struct {
	// The http server address. e.g. ':3000'
	ServerAddress string

	// Logger replaces the default Info level console logger.
	Logger *zerolog.Logger

	// The title of the HTML document.
	DocumentTitle string

	Plugins []Plugin

	// SessionManager replaces the default in-memory scs manager. Handler wraps
	// the mux in its LoadAndSave middleware.
	SessionManager *scs.SessionManager

	// DatastarContent is served at DatastarPath when set. Without it pages
	// load Datastar from DatastarPath as is (the CDN bundle by default).
	DatastarContent []byte
	DatastarPath    string

	// PubSub enables publish/subscribe messaging. See package natsbus.
	PubSub PubSub

	// ContextTTL is how long a page may live without opening its SSE stream
	// before the reaper disposes it. Negative disables the reaper. Defaults
	// to 30s.
	ContextTTL time.Duration

	// ActionRateLimit is the per-page token bucket for actions.
	ActionRateLimit RateLimitConfig
}

package addlist

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// Session is the scs session of the request a page load or action is serving.
// Outside of one, or when the app has no SessionManager, reads report nothing
// stored and writes are dropped.
type Session struct {
	ctx context.Context
	sm  *scs.SessionManager
}

func (s Session) live() bool {
	return s.sm != nil && s.ctx != nil
}

// Put stores val under key.
func (s Session) Put(key string, val any) {
	if s.live() {
		s.sm.Put(s.ctx, key, val)
	}
}

// Int returns the int stored under key and whether one was stored.
func (s Session) Int(key string) (int, bool) {
	if !s.live() || !s.sm.Exists(s.ctx, key) {
		return 0, false
	}
	return s.sm.GetInt(s.ctx, key), true
}

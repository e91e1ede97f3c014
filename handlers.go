package addlist

import (
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

func readSignals(r *http.Request) (ctxID, csrf string) {
	var sigs map[string]any
	_ = datastar.ReadSignals(r, &sigs)
	ctxID, _ = sigs[signalCtxID].(string)
	csrf, _ = sigs[signalCSRF].(string)
	return ctxID, csrf
}

// handleSSE streams the page's queued patches until the client goes away or
// the page is disposed.
func (v *App) handleSSE(w http.ResponseWriter, r *http.Request) {
	cID, _ := readSignals(r)
	c, err := v.pages.lookup(cID)
	if err != nil {
		v.logger.Warn().Err(err).Msg("sse rejected")
		http.Error(w, "unknown context", http.StatusBadRequest)
		return
	}

	sse := datastar.NewSSE(w, r, datastar.WithCompression(datastar.WithBrotli(datastar.WithBrotliLevel(5))))
	c.sseConnected.Store(true)
	c.Log().Debug().Msg("sse connected")

	go c.Sync()

	for {
		select {
		case <-sse.Context().Done():
			c.Log().Debug().Msg("sse disconnected")
			v.closePage(c)
			return
		case <-c.disposed:
			return
		case <-c.patches.ready:
			for _, elements := range c.patches.flush() {
				if err := sse.PatchElements(elements); err != nil && sse.Context().Err() == nil {
					c.Log().Error().Err(err).Msg("patch elements failed")
				}
			}
		}
	}
}

func (v *App) handleAction(w http.ResponseWriter, r *http.Request) {
	actionID := r.PathValue("id")
	cID, csrf := readSignals(r)
	c, err := v.pages.lookup(cID)
	if err != nil {
		v.logger.Warn().Err(err).Str("action", actionID).Msg("action rejected")
		http.Error(w, "unknown context", http.StatusBadRequest)
		return
	}
	log := c.Log().With().Str("action", actionID).Logger()

	if subtle.ConstantTimeCompare([]byte(csrf), []byte(c.csrf)) != 1 {
		log.Warn().Msg("invalid CSRF token")
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}
	if !allow(c.limiter) {
		log.Warn().Msg("page rate limited")
		http.Error(w, "rate limited", http.StatusTooManyRequests)
		return
	}
	a, err := c.lookupAction(actionID)
	if err != nil {
		log.Debug().Err(err).Msg("unknown action")
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}
	if !allow(a.limiter) {
		log.Warn().Msg("action rate limited")
		http.Error(w, "rate limited", http.StatusTooManyRequests)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("action panicked")
			http.Error(w, "action failed", http.StatusInternalServerError)
		}
	}()
	c.withRequest(r.Context(), a.run)
}

func (v *App) handleSessionClose(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		v.logger.Error().Err(err).Msg("session close: read body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	c, err := v.pages.lookup(string(body))
	if err != nil {
		v.logger.Debug().Err(err).Msg("session close")
		return
	}
	v.closePage(c)
}

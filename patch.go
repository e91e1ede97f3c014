package addlist

import "sync"

// patchQueue holds the latest rendered HTML per element id until the SSE loop
// flushes it. A newer render of an id replaces its pending one, so every
// component that synced is sent exactly once per flush.
type patchQueue struct {
	mu      sync.Mutex
	pending map[string]string
	order   []string
	ready   chan struct{}
}

func newPatchQueue() *patchQueue {
	return &patchQueue{
		pending: make(map[string]string),
		ready:   make(chan struct{}, 1),
	}
}

func (q *patchQueue) push(id, html string) {
	q.mu.Lock()
	if _, ok := q.pending[id]; !ok {
		q.order = append(q.order, id)
	}
	q.pending[id] = html
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// flush returns the pending patches in first-sync order and empties the queue.
func (q *patchQueue) flush() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, q.pending[id])
	}
	clear(q.pending)
	q.order = q.order[:0]
	return out
}

// Package widget implements the incremental list widget: an "Add" trigger
// followed by a growing list of generated controls, where clicking any control
// appends one more.
//
// Keys come from a Counter shared by every List built with it, so keys stay
// unique across all widgets that share the counter. The counter only moves
// forward.
package widget

import "sync/atomic"

// Counter hands out item keys. It is safe for concurrent use.
type Counter struct {
	next atomic.Int64
}

// NewCounter returns a counter whose first key is start.
func NewCounter(start int64) *Counter {
	c := &Counter{}
	c.next.Store(start)
	return c
}

// Next returns the current value and advances the counter by one.
func (c *Counter) Next() int64 {
	return c.next.Add(1) - 1
}

// Peek returns the value the next call to Next will return.
func (c *Counter) Peek() int64 {
	return c.next.Load()
}

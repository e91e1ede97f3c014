package widget

import (
	"strconv"
	"sync"
)

// Item describes one generated control. Its click handler is the add-action of
// the List that owns it; hosts bind every rendered item to that action.
type Item struct {
	Key   int64
	Label string
}

// List is the item sequence of one widget instance.
type List struct {
	mu         sync.Mutex
	counter    *Counter
	items      []Item
	onAdd      []func(Item)
	inertItems bool
}

// Option configures a List.
type Option func(*List)

// OnAdd registers fn to run after every Add, outside the list lock.
func OnAdd(fn func(Item)) Option {
	return func(l *List) {
		if fn != nil {
			l.onAdd = append(l.onAdd, fn)
		}
	}
}

// WithInertItems makes hosts render items without a click handler, so only
// the Add trigger appends.
func WithInertItems() Option {
	return func(l *List) { l.inertItems = true }
}

// NewList returns an empty list drawing keys from counter. A nil counter gets a
// private counter starting at 0.
func NewList(counter *Counter, opts ...Option) *List {
	if counter == nil {
		counter = NewCounter(0)
	}
	l := &List{counter: counter}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add takes the next key from the counter and appends an item for it.
func (l *List) Add() Item {
	l.mu.Lock()
	key := l.counter.Next()
	it := Item{Key: key, Label: strconv.FormatInt(key, 10)}
	l.items = append(l.items, it)
	hooks := l.onAdd
	l.mu.Unlock()

	for _, fn := range hooks {
		fn(it)
	}
	return it
}

// Items returns a copy of the items in insertion order.
func (l *List) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List) Counter() *Counter {
	return l.counter
}

// ItemsTrigger reports whether rendered items fire the add-action.
func (l *List) ItemsTrigger() bool {
	return !l.inertItems
}

package widget

import (
	"github.com/ryanhamamura/addlist"
	"github.com/ryanhamamura/addlist/h"
)

// SubjectAdded is the pub/sub subject Added events are published on.
const SubjectAdded = "addlist.added"

// Added is published after every add when a widget is mounted with
// PublishAdds.
type Added struct {
	Widget string `json:"widget"`
	Key    int64  `json:"key"`
}

type mountOptions struct {
	publish    bool
	actionOpts []addlist.ActionOption
}

// MountOption configures Mount.
type MountOption func(*mountOptions)

// PublishAdds publishes an Added event on SubjectAdded after each add.
func PublishAdds() MountOption {
	return func(o *mountOptions) { o.publish = true }
}

// WithActionOptions passes opts through to the add action registration.
func WithActionOptions(opts ...addlist.ActionOption) MountOption {
	return func(o *mountOptions) { o.actionOpts = append(o.actionOpts, opts...) }
}

// Mount binds l to c: it registers the add-action, sets the view, and returns
// the action trigger shared by the Add button and every item.
func Mount(c *addlist.Context, l *List, opts ...MountOption) *addlist.ActionTrigger {
	var mo mountOptions
	for _, opt := range opts {
		opt(&mo)
	}

	add := c.Action(func() {
		it := l.Add()
		if mo.publish {
			if err := addlist.Publish(c, SubjectAdded, Added{Widget: c.ID(), Key: it.Key}); err != nil {
				c.Log().Warn().Err(err).Int64("key", it.Key).Msg("publish add event failed")
			}
		}
		c.Sync()
	}, mo.actionOpts...)

	c.View(func() h.H { return Render(l, add) })
	return add
}

// Component returns a component init func mounting l, for use with
// Context.Component when several widgets share a page.
func Component(l *List, opts ...MountOption) func(*addlist.Context) {
	return func(c *addlist.Context) {
		Mount(c, l, opts...)
	}
}

// Render draws the widget: the Add trigger followed by one button per item, in
// insertion order.
func Render(l *List, add *addlist.ActionTrigger) h.H {
	items := l.Items()
	children := make([]h.H, 0, len(items)+2)
	children = append(children,
		h.Class("App"),
		h.Button(h.Class("add"), h.Text("Add"), add.OnClick()),
	)
	trigger := l.ItemsTrigger()
	children = append(children, h.Map(items, func(it Item) h.H {
		return h.Button(
			h.Class("item"),
			h.Data("key", it.Label),
			h.If(trigger, add.OnClick()),
			h.Text(it.Label),
		)
	})...)
	return h.Div(children...)
}

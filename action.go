package addlist

import (
	"fmt"

	"github.com/ryanhamamura/addlist/h"
)

// ActionTrigger is a handle to a registered action. Its methods return
// attributes that wire a DOM event to the action endpoint.
type ActionTrigger struct {
	id string
}

// ID returns the action id used in the /_action/{id} route.
func (a *ActionTrigger) ID() string {
	return a.id
}

func actionURL(id string) string {
	return fmt.Sprintf("@get('/_action/%s')", id)
}

// OnClick returns a data-on:click attribute that fires the action.
func (a *ActionTrigger) OnClick() h.H {
	return h.Data("on:click", actionURL(a.id))
}

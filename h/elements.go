package h

import (
	gh "maragu.dev/gomponents/html"
)

func Div(children ...H) H     { return gh.Div(retype(children)...) }
func Section(children ...H) H { return gh.Section(retype(children)...) }
func Span(children ...H) H    { return gh.Span(retype(children)...) }
func P(children ...H) H       { return gh.P(retype(children)...) }
func H1(children ...H) H      { return gh.H1(retype(children)...) }
func Button(children ...H) H  { return gh.Button(retype(children)...) }
func Script(children ...H) H  { return gh.Script(retype(children)...) }
func Meta(children ...H) H    { return gh.Meta(retype(children)...) }
func Link(children ...H) H    { return gh.Link(retype(children)...) }

func ID(v string) H    { return gh.ID(v) }
func Class(v string) H { return gh.Class(v) }
func Type(v string) H  { return gh.Type(v) }
func Src(v string) H   { return gh.Src(v) }
func Rel(v string) H   { return gh.Rel(v) }
func Href(v string) H  { return gh.Href(v) }
func Style(v string) H { return gh.Style(v) }

// Data creates a data-* attribute, e.g. Data("on:click", expr) renders
// data-on:click="expr".
func Data(name, v string) H { return gh.Data(name, v) }

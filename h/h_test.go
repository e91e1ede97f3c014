package h

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, n H) string {
	t.Helper()
	var b bytes.Buffer
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestDivSkipsNilChildren(t *testing.T) {
	out := render(t, Div(Class("App"), nil, If(false, Text("hidden")), Text("shown")))
	assert.Equal(t, `<div class="App">shown</div>`, out)
}

func TestDataAttribute(t *testing.T) {
	out := render(t, Button(Data("key", "7"), Text("7")))
	assert.Equal(t, `<button data-key="7">7</button>`, out)
}

func TestMapKeepsOrder(t *testing.T) {
	nodes := Map([]string{"a", "b", "c"}, func(s string) H { return Span(Text(s)) })
	out := render(t, Div(nodes...))
	assert.Equal(t, "<div><span>a</span><span>b</span><span>c</span></div>", out)
}

func TestHTML5(t *testing.T) {
	out := render(t, HTML5(HTML5Props{
		Title: "Add list",
		Body:  []H{Div(Text("body"))},
	}))
	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, "<title>Add list</title>")
	assert.Contains(t, out, "<div>body</div>")
}

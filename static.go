package addlist

import (
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// Static serves files from dir under the URL prefix. Directory listings are
// not served.
func (v *App) Static(prefix, dir string) {
	v.StaticFS(prefix, os.DirFS(dir))
}

// StaticFS serves files from fsys under the URL prefix. Directory listings are
// not served.
func (v *App) StaticFS(prefix string, fsys fs.FS) {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	fileServer := http.StripPrefix(prefix, http.FileServer(http.FS(fsys)))
	v.mux.Handle("GET "+prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	}))
}

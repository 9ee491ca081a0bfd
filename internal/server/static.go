package server

import (
	"net/http"
	"os"
	"path/filepath"
)

// staticFile serves one named file from dir, or 404 when it is absent.
// http.ServeContent is used instead of http.ServeFile so that
// /index.html is served directly rather than redirected to /.
func staticFile(dir, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if dir == "" {
			http.NotFound(w, r)
			return
		}

		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		http.ServeContent(w, r, name, info.ModTime(), f)
	})
}

package asset

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
)

// Handler serves the browser UI: the page, its scripts and the wasm build
// of the engine.
type Handler struct {
	dir string // directory holding the built UI
}

// NewHandler creates a handler serving files from dir.
func NewHandler(dir string) *Handler {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		slog.Warn("static dir not found, UI disabled", "dir", dir)
	}
	return &Handler{dir: dir}
}

// Serve returns an http.Handler for the UI files. Pages are revalidated on
// every load; the wasm binary and scripts may be cached for an hour.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch ext := path.Ext(r.URL.Path); {
		case ext == ".wasm", ext == ".js", ext == ".css":
			w.Header().Set("Cache-Control", "public, max-age=3600")
		case ext == "", strings.HasSuffix(r.URL.Path, ".html"):
			w.Header().Set("Cache-Control", "no-cache")
		}
		fs.ServeHTTP(w, r)
	})
}

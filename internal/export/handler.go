package export

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hypdisk/hypdisk/internal/engine"
	"github.com/hypdisk/hypdisk/internal/live"
	"github.com/hypdisk/hypdisk/internal/raster"
	"github.com/hypdisk/hypdisk/internal/script"
)

const maxScriptSize = 1 << 20 // 1MB

// Handler serves PNG snapshots of live sessions and of scene scripts.
type Handler struct {
	hub      *live.Hub
	settings engine.Settings
}

func NewHandler(hub *live.Hub, settings engine.Settings) *Handler {
	return &Handler{hub: hub, settings: settings}
}

// Frame handles GET /sessions/{sessionId}/frame.png.
func (h *Handler) Frame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]
	session, ok := h.hub.Session(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	h.writePNG(w, session.Frame(), labels(r), "")
}

// Render handles POST /render. The body is a scene script; the reply is the
// final frame as PNG.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxScriptSize)
	src, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "script too large (max 1MB)", http.StatusBadRequest)
		return
	}

	s, err := script.Parse(string(src))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	settings := h.settings
	if v := r.URL.Query().Get("size"); v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil || size <= 2*settings.Padding || size > 8192 {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
		settings.CanvasSize = size
	}

	e := engine.NewEngine(settings)
	if err := s.Run(e); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "scene"
	}
	// Sanitize filename
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)

	h.writePNG(w, e.Render(), labels(r), name)
}

func (h *Handler) writePNG(w http.ResponseWriter, cmds []engine.DrawCommand, withLabels bool, name string) {
	var buf bytes.Buffer
	if err := raster.WritePNG(&buf, cmds, raster.Options{Labels: withLabels}); err != nil {
		slog.Error("rasterize frame", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if name != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.png"`, name))
	}
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func labels(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("labels"))
	return v
}

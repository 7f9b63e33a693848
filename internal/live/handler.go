package live

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/hypdisk/hypdisk/internal/engine"
)

// Handler upgrades each request to a websocket with its own session. The
// optional size query parameter overrides the canvas size.
func Handler(hub *Hub, settings engine.Settings, origins []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := settings
		if v := r.URL.Query().Get("size"); v != "" {
			size, err := strconv.ParseFloat(v, 64)
			if err != nil || size <= 2*s.Padding {
				http.Error(w, "invalid size", http.StatusBadRequest)
				return
			}
			s.CanvasSize = size
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: origins,
		})
		if err != nil {
			slog.Error("websocket accept", "error", err)
			return
		}

		clientID := uuid.New().String()
		client := NewClient(hub, conn, NewSession(s), clientID)

		hub.Register(client)

		ctx := r.Context()
		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}
}

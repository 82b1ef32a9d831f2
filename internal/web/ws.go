package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/jaminalder/tictactoe-minimax/internal/app"
)

const wsWriteWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type string        `json:"type"`
	Game *app.Snapshot `json:"game,omitempty"`
}

// ws streams a JSON snapshot of the game on connect and after every move.
func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", "id", id, "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	// the read side only watches for the client going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		return
	}
	defer unsub()

	if err := h.writeSnapshot(conn, id); err != nil {
		return
	}
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := writeWSJSON(conn, wsMessage{Type: "ping"}); err != nil {
				return
			}
		case _, ok := <-ch:
			if !ok {
				return
			}
			if err := h.writeSnapshot(conn, id); err != nil {
				h.log.Debug("websocket write", "id", id, "err", err)
				return
			}
		}
	}
}

func (h *handlers) writeSnapshot(conn *websocket.Conn, id string) error {
	gs, ok := h.svc.Get(id)
	if !ok {
		return app.ErrNotFound
	}
	snap := gs.Snapshot()
	return writeWSJSON(conn, wsMessage{Type: "game", Game: &snap})
}

func writeWSJSON(conn *websocket.Conn, msg wsMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteMessage(websocket.TextMessage, b)
}

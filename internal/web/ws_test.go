package web

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jaminalder/tictactoe-minimax/internal/domain"
)

func readGame(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	for {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type == "game" {
			return msg
		}
	}
}

func TestWebSocketStreamsSnapshots(t *testing.T) {
	svc, h := newTestServer(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	gs, _ := svc.CreateGame(domain.Human)
	svc.Join(gs.ID, "p1")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + gs.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	first := readGame(t, conn)
	if first.Game == nil || first.Game.Moves != 0 || first.Game.ID != gs.ID {
		t.Fatalf("unexpected initial snapshot %+v", first.Game)
	}

	if _, err := svc.Play(gs.ID, "p1", 1, 1); err != nil {
		t.Fatalf("play: %v", err)
	}
	next := readGame(t, conn)
	if next.Game.Moves != 2 || next.Game.Board[4] != "X" || next.Game.LastComputerMove != 1 {
		t.Fatalf("unexpected snapshot after move %+v", next.Game)
	}
}

func TestWebSocketUnknownGame(t *testing.T) {
	_, h := newTestServer(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/missing/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != 404 {
		t.Fatalf("expected 404 handshake response, got %v", resp)
	}
}

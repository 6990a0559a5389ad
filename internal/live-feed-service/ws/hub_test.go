package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// subscribe registra a assinatura e espera o pong para garantir que a
// mensagem anterior já foi processada pelo hub
func subscribe(t *testing.T, conn *websocket.Conn, game string) {
	t.Helper()
	if err := conn.WriteJSON(ClientMsg{Type: "subscribe", Game: game}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := conn.WriteJSON(ClientMsg{Type: "ping"}); err != nil {
		t.Fatalf("ping: %v", err)
	}
	var pong map[string]string
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&pong); err != nil || pong["type"] != "pong" {
		t.Fatalf("pong: %v %v", pong, err)
	}
}

func readUpdate(t *testing.T, conn *websocket.Conn) SettlementUpdate {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var upd SettlementUpdate
	if err := json.Unmarshal(b, &upd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return upd
}

func TestBroadcastPerGameAndFirehose(t *testing.T) {
	hub := NewHub(func(r *http.Request) bool { return true })
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	slotsConn := dial(t, srv)
	allConn := dial(t, srv)
	subscribe(t, slotsConn, "slots")
	subscribe(t, allConn, "") // feed completo

	hub.Broadcast(SettlementUpdate{Game: "slots", Payload: map[string]any{"round_id": "r-1"}})

	if got := readUpdate(t, slotsConn); got.Game != "slots" {
		t.Fatalf("assinante de slots recebeu %q", got.Game)
	}
	if got := readUpdate(t, allConn); got.Game != "slots" {
		t.Fatalf("firehose recebeu %q", got.Game)
	}

	// roleta só chega no firehose
	hub.Broadcast(SettlementUpdate{Game: "roulette"})
	if got := readUpdate(t, allConn); got.Game != "roulette" {
		t.Fatalf("firehose recebeu %q", got.Game)
	}
	_ = slotsConn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := slotsConn.ReadMessage(); err == nil {
		t.Fatalf("assinante de slots não deveria receber roleta")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(func(r *http.Request) bool { return true })
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	conn := dial(t, srv)
	subscribe(t, conn, "roulette")

	if err := conn.WriteJSON(ClientMsg{Type: "unsubscribe", Game: "roulette"}); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if err := conn.WriteJSON(ClientMsg{Type: "ping"}); err != nil {
		t.Fatalf("ping: %v", err)
	}
	var pong map[string]string
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&pong); err != nil {
		t.Fatalf("pong: %v", err)
	}

	hub.Broadcast(SettlementUpdate{Game: "roulette"})
	_ = conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("entrega após unsubscribe")
	}
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"nhooyr.io/websocket"

	"loteria/internal/card"
	"loteria/internal/deck"
	"loteria/internal/game"
	"loteria/internal/session"
	"loteria/internal/storage"
)

// --- Test environment ---

type testEnv struct {
	ts    *httptest.Server
	table *session.Table
	store *storage.Store
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := storage.New(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	table, err := session.New(session.Config{MaxPlayers: 2, BoardSize: 4},
		session.WithStore(store), session.WithRand(deck.NewRand(7)))
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	webFS := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<html><body>test</body></html>")},
	}
	srv := New(table, webFS, nil)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, table: table, store: store}
}

// --- Context helpers ---

func timeoutCtx(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// --- REST API helpers ---

// postJSON posts body (marshalled unless it is a string) and returns the response.
func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	var data []byte
	switch b := body.(type) {
	case nil:
	case string:
		data = []byte(b)
	default:
		var err error
		if data, err = json.Marshal(b); err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		t.Fatalf("%s %s: expected %d, got %d (%v)", resp.Request.Method, resp.Request.URL.Path, want, resp.StatusCode, body)
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func joinViaAPI(t *testing.T, ts *httptest.Server, name string, boards int) {
	t.Helper()
	resp := postJSON(t, ts, "/api/players", joinRequest{Name: name, Boards: boards})
	expectStatus(t, resp, http.StatusCreated)
}

// playUntilWinViaAPI calls cards until name's claim succeeds.
func playUntilWinViaAPI(t *testing.T, ts *httptest.Server, name, pattern string) session.Claim {
	t.Helper()
	for i := 0; i < card.Size; i++ {
		expectStatus(t, postJSON(t, ts, "/api/call", nil), http.StatusOK)
		resp := postJSON(t, ts, "/api/claim", claimRequest{Player: name, Pattern: pattern})
		expectStatus(t, resp, http.StatusOK)
		if res := decode[session.Claim](t, resp); res.Won {
			return res
		}
	}
	t.Fatalf("no win for %s after the whole deck", name)
	return session.Claim{}
}

// --- WebSocket helpers ---

func wsURL(ts *httptest.Server) string {
	return strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/ws"
}

// wsConnect dials the event stream and consumes the initial state message.
// The caller is responsible for closing the connection.
func wsConnect(t *testing.T, ts *httptest.Server) (*websocket.Conn, game.Summary) {
	t.Helper()
	ctx, cancel := timeoutCtx(t)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, wsURL(ts), nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	return conn, readState(t, ctx, conn)
}

// sendWS marshals and sends a typed WebSocket message. Returns an error on failure.
func sendWS(ctx context.Context, conn *websocket.Conn, msgType string, payload any) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(WSMessage{Type: msgType, Payload: p})
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, msg)
}

// readWS reads and unmarshals a single WebSocket message. Returns an error on failure.
func readWS(ctx context.Context, conn *websocket.Conn) (WSMessage, error) {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return WSMessage{}, err
	}
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return WSMessage{}, err
	}
	return msg, nil
}

// wsRead reads a message of the given type, calling t.Fatal otherwise.
func wsRead(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string) WSMessage {
	t.Helper()
	msg, err := readWS(ctx, conn)
	if err != nil {
		t.Fatalf("read %s: %v", msgType, err)
	}
	if msg.Type != msgType {
		t.Fatalf("expected %s message, got %q: %s", msgType, msg.Type, string(msg.Payload))
	}
	return msg
}

// readState reads a WebSocket message and expects it to be a "state" message.
func readState(t *testing.T, ctx context.Context, conn *websocket.Conn) game.Summary {
	t.Helper()
	msg := wsRead(t, ctx, conn, session.EventState)
	var sum game.Summary
	if err := json.Unmarshal(msg.Payload, &sum); err != nil {
		t.Fatalf("unmarshal state payload: %v", err)
	}
	return sum
}

// readError reads a WebSocket message and expects it to be an "error" message.
func readError(t *testing.T, ctx context.Context, conn *websocket.Conn) string {
	t.Helper()
	msg := wsRead(t, ctx, conn, "error")
	var ep errorPayload
	if err := json.Unmarshal(msg.Payload, &ep); err != nil {
		t.Fatalf("unmarshal error payload: %v", err)
	}
	return ep.Message
}

func containsPlayer(players []game.PlayerSummary, name string) bool {
	for _, p := range players {
		if p.Name == name {
			return true
		}
	}
	return false
}

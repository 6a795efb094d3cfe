package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"loteria/internal/session"
)

// WSMessage is the JSON envelope for WebSocket messages.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow any origin for dev
	})
	if err != nil {
		s.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()
	watcher := s.table.Watch()
	defer s.table.Unwatch(watcher)

	// Current state first so the page can render before any event.
	sendWSMsg(watcher.Send, session.EventState, s.table.Snapshot())

	// Writer goroutine: send messages from the channel to the websocket
	go func() {
		for msg := range watcher.Send {
			if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}()

	// Reader loop: handle incoming messages
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sendWSMsg(watcher.Send, "error", errorPayload{Message: "invalid message"})
			continue
		}
		s.handleMessage(watcher.Send, msg)
	}
	s.log.Debug("websocket closed", zap.String("remote", r.RemoteAddr))
}

// handleMessage runs one client command. Successful commands reach every
// watcher through the table's own events; failures go back to the sender.
func (s *Server) handleMessage(send chan []byte, msg WSMessage) {
	var err error
	switch msg.Type {
	case "join":
		var req joinRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			sendWSMsg(send, "error", errorPayload{Message: "invalid join payload"})
			return
		}
		if req.Boards == 0 {
			req.Boards = 1
		}
		err = s.table.Join(req.Name, req.Boards)
	case "ready":
		err = s.table.Ready()
	case "start":
		err = s.table.Start()
	case "call":
		_, err = s.table.Call()
	case "pause":
		err = s.table.Pause()
	case "resume":
		err = s.table.Resume()
	case "cancel":
		err = s.table.Cancel()
	case "new":
		err = s.table.NewGame()
	case "claim":
		var req claimRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			sendWSMsg(send, "error", errorPayload{Message: "invalid claim payload"})
			return
		}
		var res session.Claim
		res, err = s.table.Claim(req.Player, req.Pattern)
		if err == nil && !res.Won {
			sendWSMsg(send, "claim", res)
		}
	default:
		sendWSMsg(send, "error", errorPayload{Message: "unknown message type: " + msg.Type})
		return
	}
	if err != nil {
		sendWSMsg(send, "error", errorPayload{Message: errorMessage(err)})
	}
}

func sendWSMsg(send chan []byte, msgType string, payload any) {
	p, _ := json.Marshal(payload)
	msg, _ := json.Marshal(WSMessage{Type: msgType, Payload: p})
	select {
	case send <- msg:
	default:
	}
}

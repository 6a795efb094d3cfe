package server

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"loteria/internal/card"
	"loteria/internal/game"
	"loteria/internal/session"
)

// Server is the HTTP server.
type Server struct {
	mux   *http.ServeMux
	table *session.Table
	webFS fs.FS
	log   *zap.Logger
}

// New creates a server with all routes.
// webFS should be the "web" subdirectory of the embedded filesystem.
func New(table *session.Table, webFS fs.FS, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mux:   http.NewServeMux(),
		table: table,
		webFS: webFS,
		log:   logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// API routes
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/patterns", s.handlePatterns)
	s.mux.HandleFunc("GET /api/state", s.handleState)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/history", s.handleHistory)
	s.mux.HandleFunc("POST /api/players", s.handleJoin)
	s.mux.HandleFunc("GET /api/players/{name}/boards/{index}", s.handleBoard)
	s.mux.HandleFunc("POST /api/ready", s.command(s.table.Ready))
	s.mux.HandleFunc("POST /api/start", s.command(s.table.Start))
	s.mux.HandleFunc("POST /api/pause", s.command(s.table.Pause))
	s.mux.HandleFunc("POST /api/resume", s.command(s.table.Resume))
	s.mux.HandleFunc("POST /api/cancel", s.command(s.table.Cancel))
	s.mux.HandleFunc("POST /api/new", s.command(s.table.NewGame))
	s.mux.HandleFunc("POST /api/call", s.handleCall)
	s.mux.HandleFunc("POST /api/claim", s.handleClaim)
	s.mux.HandleFunc("GET /api/ws", s.handleWebSocket)

	// Static files
	s.mux.Handle("/", http.FileServer(http.FS(s.webFS)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, card.Standard().All())
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.table.Patterns())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.table.Snapshot())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(s.table.StatsReport()))
		return
	}
	writeJSON(w, http.StatusOK, s.table.Stats())
}

type historyEntry struct {
	ID          string   `json:"id"`
	State       string   `json:"state"`
	Winner      string   `json:"winner,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	CardsCalled int      `json:"cardsCalled"`
	DurationMS  int64    `json:"durationMs"`
	EndedAt     string   `json:"endedAt"`
	Players     []string `json:"players"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	rows, err := s.table.History(limit)
	if err != nil {
		s.log.Error("list history", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
		return
	}
	out := make([]historyEntry, 0, len(rows))
	for _, g := range rows {
		out = append(out, historyEntry{
			ID:          g.ID,
			State:       g.State,
			Winner:      g.Winner,
			Pattern:     g.Pattern,
			CardsCalled: g.CardsCalled,
			DurationMS:  g.Duration.Milliseconds(),
			EndedAt:     g.EndedAt.Format(time.RFC3339),
			Players:     g.Players,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type joinRequest struct {
	Name   string `json:"name"`
	Boards int    `json:"boards"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Boards == 0 {
		req.Boards = 1
	}
	if err := s.table.Join(req.Name, req.Boards); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.table.Snapshot())
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "board index must be a number"})
		return
	}
	view, err := s.table.ViewBoard(r.PathValue("name"), index)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// command adapts a state command to a handler that answers with the new state.
func (s *Server) command(fn func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(); err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.table.Snapshot())
	}
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	call, err := s.table.Call()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, call)
}

type claimRequest struct {
	Player  string `json:"player"`
	Pattern string `json:"pattern"`
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Player) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "player required"})
		return
	}
	res, err := s.table.Claim(req.Player, strings.TrimSpace(req.Pattern))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// statusFor maps an error's kind to an HTTP status.
func statusFor(err error) int {
	switch game.KindOf(err) {
	case game.KindValidation:
		return http.StatusBadRequest
	case game.KindLookup:
		return http.StatusNotFound
	case game.KindPhase, game.KindCapacity:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": errorMessage(err)})
}

// errorMessage hides the detail of unclassified errors.
func errorMessage(err error) string {
	if game.KindOf(err) == game.KindUnknown {
		return "internal error"
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Package leaderboard exposes the score store over HTTP, with a websocket
// feed that announces new submissions as they arrive.
package leaderboard

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"leafglide/internal/storage"
)

const maxTopLimit = 100

// SubmitRequest is the body of POST /scores.
type SubmitRequest struct {
	Name   string `json:"name,omitempty"`
	Handle string `json:"handle,omitempty"`
	Score  int    `json:"score"`
}

// Server serves the leaderboard HTTP API.
type Server struct {
	store    *storage.Store
	hub      *Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer wires the store and live feed hub into an HTTP server.
func NewServer(store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  store,
		hub:    NewHub(logger),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /scores", s.handleSubmit)
	mux.HandleFunc("GET /scores/top", s.handleTop)
	mux.HandleFunc("GET /scores/live", s.handleLive)
	return mux
}

// Close shuts down the live feed.
func (s *Server) Close() {
	s.hub.Close()
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	if req.Score < 0 || req.Score > storage.MaxScore {
		http.Error(w, "score out of range", http.StatusBadRequest)
		return
	}

	entry, err := s.store.SaveScore(req.Name, req.Handle, req.Score)
	if err != nil {
		s.logger.Error("cannot save score", "error", err)
		http.Error(w, "cannot save score", http.StatusInternalServerError)
		return
	}

	s.hub.Broadcast(entry)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxTopLimit {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.store.TopScores(limit)
	if err != nil {
		s.logger.Error("cannot query top scores", "error", err)
		http.Error(w, "cannot query scores", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	id := s.hub.Register(conn)
	defer s.hub.Unregister(id)

	// Drain incoming frames so pings and close messages are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

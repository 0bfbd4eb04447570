package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bryanchriswhite/WindowScout/internal/logger"
	"github.com/bryanchriswhite/WindowScout/internal/window"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Server represents the HTTP API server
type Server struct {
	router    *mux.Router
	windowMgr *window.Manager
	upgrader  websocket.Upgrader
}

// NewServer creates a new API server
func NewServer(windowMgr *window.Manager) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		windowMgr: windowMgr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for local tooling
			},
		},
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/windows", s.handleListWindows).Methods("GET")
	api.HandleFunc("/windows/find", s.handleFindWindow).Methods("GET")
	api.HandleFunc("/windows/stream", s.handleWindowStream)

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return s.enableCORS(s.router)
}

// Start starts the HTTP server
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logger.WithComponent("api").Info().Str("addr", addr).Msg("Starting HTTP server")
	return http.ListenAndServe(addr, s.Handler())
}

// enableCORS adds CORS headers
func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// modeParam reads ?mode=, defaulting to the manager's mode.
func (s *Server) modeParam(r *http.Request) (window.SearchMode, error) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return s.windowMgr.Mode(), nil
	}
	return window.ParseSearchMode(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithComponent("api").Debug().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// HTTP Handlers

func (s *Server) handleListWindows(w http.ResponseWriter, r *http.Request) {
	mode, err := s.modeParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	windows := s.windowMgr.Snapshot(mode)
	writeJSON(w, http.StatusOK, s.windowMgr.DescribeAll(windows))
}

func (s *Server) handleFindWindow(w http.ResponseWriter, r *http.Request) {
	mode, err := s.modeParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing title parameter"))
		return
	}

	info, err := s.windowMgr.FindByTitle(mode, title)
	if errors.Is(err, window.ErrNoMatch) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, s.windowMgr.Describe(info))
}

func (s *Server) handleWindowStream(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("api")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket upgrade error")
		return
	}
	defer conn.Close()

	// Subscribe to window list changes
	updates := s.windowMgr.Subscribe()
	defer s.windowMgr.Unsubscribe(updates)

	// Drain client frames; a read error means the peer went away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.windowMgr.Unsubscribe(updates)
				return
			}
		}
	}()

	// Send initial snapshot
	if err := conn.WriteJSON(s.windowMgr.DescribeAll(s.windowMgr.Current())); err != nil {
		log.Debug().Err(err).Msg("WebSocket write error")
		return
	}

	// Stream updates
	for windows := range updates {
		if err := conn.WriteJSON(s.windowMgr.DescribeAll(windows)); err != nil {
			log.Debug().Err(err).Msg("WebSocket write error")
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": Version,
		"backend": s.windowMgr.System().Name(),
		"mode":    s.windowMgr.Mode().String(),
	})
}

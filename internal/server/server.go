// Package server provides the HTTP server for the sign recognition service.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/ayusman/signbridge/internal/app"
	"github.com/ayusman/signbridge/internal/server/api"
)

// StatusText is the body of GET /.
const StatusText = "Server is running! ✅"

// StaticFiles are the only files served from StaticDir.
var StaticFiles = []string{"index.html", "hearing.html", "style.css"}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	App       *app.App

	// AllowedOrigin is the single cross-origin caller permitted, with credentials.
	AllowedOrigin string
}

// Server represents the HTTP server for the sign recognition service.
type Server struct {
	config  Config
	mux     *http.ServeMux
	handler http.Handler
	start   time.Time
	stream  *SignStreamHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()

	var h http.Handler = s.mux
	if config.AllowedOrigin != "" {
		h = cors.New(cors.Options{
			AllowedOrigins:   []string{config.AllowedOrigin},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}).Handler(h)
	}
	s.handler = logRequests(h)

	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleStatus)
	s.mux.HandleFunc("GET /test", s.handleTest)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if s.config.App != nil {
		s.mux.Handle("POST /sign-to-text", api.NewSignHandler(s.config.App))
		s.stream = NewSignStreamHandler(s.config.App, s.config.AllowedOrigin)
		s.mux.Handle("GET /ws/sign-to-text", s.stream)

		if st := s.config.App.Store(); st != nil {
			s.mux.Handle("GET /api/history", api.NewHistoryHandler(st))
		}
	}

	for _, name := range StaticFiles {
		s.mux.Handle("GET /"+name, staticFile(s.config.StaticDir, name))
	}
}

// CloseStreams ends open WebSocket streams, which http.Server.Shutdown
// does not track, and waits for their frames to finish.
func (s *Server) CloseStreams() {
	if s.stream != nil {
		s.stream.Close()
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// handleStatus handles GET / with a plain-text liveness message.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(StatusText))
}

// handleTest handles GET /test. Any request body is ignored.
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"message": "Server working!",
		"success": true,
	})
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

func writeJSON(w http.ResponseWriter, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

/* models.go
 * Contains the configuration and state of the web console
 */

package web

import (
	"html/template"
	"log/slog"

	"chess-tournament-ui/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr        string
	API         *api.API
	Logger      *slog.Logger
	CORSOrigins []string
}

// Server renders the console tabs and handles the operator's forms
type Server struct {
	api         *api.API
	logger      *slog.Logger
	hub         *Hub
	templates   *template.Template
	corsOrigins []string
}

// NewServer creates a Server and registers its hub as the API's event publisher. The hub must be started with
// Hub.Run before clients connect
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hub := NewHub(logger)
	if cfg.API != nil {
		cfg.API.Events = hub
	}
	return &Server{
		api:         cfg.API,
		logger:      logger,
		hub:         hub,
		templates:   parseTemplates(),
		corsOrigins: cfg.CORSOrigins,
	}
}

// Hub returns the websocket hub of the server
func (s *Server) Hub() *Hub {
	return s.hub
}

// Package api provides the boardkit REST API server: format discovery and
// board export over HTTP.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/openaac/boardkit/internal/logging"
)

// Config holds server configuration.
type Config struct {
	Port int
	// ReadTimeout bounds how long a request body read may take.
	ReadTimeout time.Duration
	// WriteTimeout bounds response writes; exports are small so the
	// default is generous.
	WriteTimeout time.Duration
}

// DefaultConfig returns the configuration used when flags supply nothing.
func DefaultConfig() Config {
	return Config{
		Port:         8080,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Start runs the API server until the listener fails.
func Start(cfg Config) error {
	if cfg.Port <= 0 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultConfig().ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultConfig().WriteTimeout
	}

	logging.ServerStartup("rest_api", cfg.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler builds the full route table wrapped in the logging middleware.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /api/v1/formats", handleListFormats)
	mux.HandleFunc("POST /api/v1/exports/{format}", handleExport)
	return logging.CombinedMiddleware(mux)
}

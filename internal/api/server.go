package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"sitepulse/internal/analytics"
	"sitepulse/internal/config"
	"sitepulse/internal/database"
)

type Server struct {
	config    *config.Config
	store     *database.Store
	analytics *analytics.Service
	logger    *slog.Logger
}

func NewServer(cfg *config.Config, store *database.Store, svc *analytics.Service, logger *slog.Logger) *Server {
	return &Server{
		config:    cfg,
		store:     store,
		analytics: svc,
		logger:    logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// @Summary      Health check
// @Tags         ops
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {string}  string "Service Unavailable"
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", "error", err)
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

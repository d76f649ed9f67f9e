package api

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"

	"sitepulse/internal/analytics"
)

// CollectRequest is the signal payload the tracker posts. Field names match
// the wire contract; unknown fields in the body are ignored.
type CollectRequest struct {
	WebsiteID  string                 `json:"websiteId" example:"my-site"`
	SessionID  string                 `json:"sessionId" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	Type       string                 `json:"type" example:"pageview" enums:"pageview,event,duration"`
	URL        string                 `json:"url" example:"https://example.com/pricing"`
	Referrer   string                 `json:"referrer,omitempty"`
	Name       string                 `json:"name,omitempty" example:"signup_click"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Duration   int                    `json:"duration,omitempty" example:"42"`
	Device     string                 `json:"device,omitempty" example:"desktop"`
	OS         string                 `json:"os,omitempty" example:"Linux"`
	Browser    string                 `json:"browser,omitempty" example:"Firefox"`
}

type collectResponse struct {
	Success bool `json:"success"`
}

// @Summary      Ingest a tracker signal
// @Description  Accepts pageview, event and duration signals. The session is resolved (created on first sight) before the signal body is handled.
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        signal  body      CollectRequest  true  "signal payload"
// @Success      200     {object}  collectResponse
// @Failure      400     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/analytics/collect [post]
func (s *Server) CollectHandler(w http.ResponseWriter, r *http.Request) {
	// The tracker posts cross-origin; the actual response needs the header
	// as much as the preflight does.
	w.Header().Set("Access-Control-Allow-Origin", "*")

	var req CollectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		signalsRejectedTotal.WithLabelValues("invalid_body").Inc()
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.WebsiteID == "" || req.SessionID == "" || req.Type == "" {
		signalsRejectedTotal.WithLabelValues("missing_fields").Inc()
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	// One-shot use of the client IP: it feeds the country lookup for a new
	// session and is never stored.
	ip := clientIP(r)

	created, err := s.analytics.ResolveSession(r.Context(), req.SessionID, analytics.DeviceInfo{
		Device:  req.Device,
		OS:      req.OS,
		Browser: req.Browser,
	}, ip)
	if err != nil {
		s.logger.Error("failed to resolve session", "error", err, "type", req.Type)
		respondError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if created {
		sessionsCreatedTotal.Inc()
	}

	path := pathFromURL(req.URL)

	switch req.Type {
	case "pageview":
		err = s.analytics.RecordPageview(r.Context(), req.SessionID, path, req.Referrer)

	case "event":
		name := req.Name
		if name == "" {
			name = "custom"
		}
		err = s.analytics.RecordEvent(r.Context(), req.SessionID, name, path, req.Properties)

	case "duration":
		// A zero or absent duration is acknowledged and dropped.
		if req.Duration > 0 {
			err = s.analytics.UpdateDuration(r.Context(), req.SessionID, path, req.Duration)
		}

	default:
		signalsRejectedTotal.WithLabelValues("unknown_type").Inc()
		respondError(w, http.StatusBadRequest, "Unknown event type")
		return
	}

	if err != nil {
		s.logger.Error("failed to record signal", "error", err, "type", req.Type)
		respondError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	signalsIngestedTotal.WithLabelValues(req.Type).Inc()
	respondJSON(w, http.StatusOK, collectResponse{Success: true})
}

// CollectPreflightHandler answers CORS preflight for the collection
// endpoint: any origin may POST signals.
func (s *Server) CollectPreflightHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusNoContent)
}

// pathFromURL reduces an absolute URL to its origin-relative path. Query
// and fragment never survive; anything unparseable falls back to "/".
func pathFromURL(raw string) string {
	if raw == "" {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	// SplitHostPort also unwraps IPv6 brackets, which a naive colon scan
	// would leave in place.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package api

import (
	_ "embed"
	"net/http"
)

//go:embed tracker.js
var trackerScript []byte

// TrackerHandler serves the embedded browser tracker so sites can load it
// straight from the collection host.
func (s *Server) TrackerHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(trackerScript)
}

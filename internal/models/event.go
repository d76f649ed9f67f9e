package models

import (
	"encoding/json"
	"time"
)

// Event is a named custom occurrence tied to a session. Properties are an
// opaque JSON document; the store accepts and returns them uninspected.
type Event struct {
	ID         int64           `json:"id"`
	SessionID  string          `json:"session_id"`
	Type       string          `json:"type" example:"signup_click"`
	Path       string          `json:"path" example:"/pricing"`
	Properties json.RawMessage `json:"properties,omitempty" swaggertype:"object"`
	CreatedAt  time.Time       `json:"created_at"`
}

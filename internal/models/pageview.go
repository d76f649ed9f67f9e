package models

import "time"

// Pageview is one page visit within a session. Duration stays nil until a
// later duration signal fills it in.
type Pageview struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Path      string    `json:"path" example:"/pricing"`
	Referrer  *string   `json:"referrer,omitempty"`
	Duration  *int      `json:"duration,omitempty" example:"42"`
	Timestamp time.Time `json:"timestamp"`
}

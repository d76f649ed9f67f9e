package models

import "time"

// Session is a cookie-less visitor identity. The id is generated by the
// tracker once per page load; device facts and country are written on the
// first signal and never updated afterwards.
type Session struct {
	ID        string    `json:"id" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	CreatedAt time.Time `json:"created_at"`
	Device    *string   `json:"device,omitempty" example:"desktop"`
	OS        *string   `json:"os,omitempty" example:"Linux"`
	Browser   *string   `json:"browser,omitempty" example:"Firefox"`
	Country   *string   `json:"country,omitempty" example:"PL"`
}

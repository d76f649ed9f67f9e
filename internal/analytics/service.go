// Package analytics holds the ingestion core: cookie-less session
// resolution and signal recording. All state lives in the store; the
// service itself is stateless and safe for concurrent use.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"sitepulse/internal/database"
	"sitepulse/internal/geo"
)

// Store is the slice of the database layer the ingestion core needs.
// *database.Store satisfies it.
type Store interface {
	SessionExists(ctx context.Context, id string) (bool, error)
	InsertSessionIfAbsent(ctx context.Context, arg database.CreateSessionParams) (bool, error)
	CreatePageview(ctx context.Context, arg database.CreatePageviewParams) error
	CreateEvent(ctx context.Context, arg database.CreateEventParams) error
	SetPageviewDuration(ctx context.Context, sessionID string, path string, seconds int) (bool, error)
}

// DeviceInfo carries the device facts a signal reports. Empty strings are
// stored as NULL; no defaulting happens here.
type DeviceInfo struct {
	Device  string
	OS      string
	Browser string
}

type Service struct {
	store    Store
	resolver geo.Resolver
}

func NewService(store Store, resolver geo.Resolver) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
	}
}

// ResolveSession ensures a session row exists for the id and reports
// whether this call created it. An existing session is returned untouched,
// so its device facts and country always reflect the first signal. For a
// new session the raw IP is resolved to a country exactly once and then
// dropped; lookup failures degrade to no country. Store errors propagate to
// the caller.
func (s *Service) ResolveSession(ctx context.Context, sessionID string, info DeviceInfo, rawIP string) (bool, error) {
	if sessionID == "" {
		return false, fmt.Errorf("session id must not be empty")
	}

	exists, err := s.store.SessionExists(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	var country *string
	if rawIP != "" {
		if code, err := s.resolver.CountryCode(ctx, rawIP); err == nil {
			country = &code
		}
	}

	return s.store.InsertSessionIfAbsent(ctx, database.CreateSessionParams{
		ID:      sessionID,
		Device:  nullable(info.Device),
		OS:      nullable(info.OS),
		Browser: nullable(info.Browser),
		Country: country,
	})
}

// RecordPageview appends a pageview with no duration. Repeated views of the
// same path within a session are deliberately not deduplicated.
func (s *Service) RecordPageview(ctx context.Context, sessionID string, path string, referrer string) error {
	return s.store.CreatePageview(ctx, database.CreatePageviewParams{
		SessionID: sessionID,
		Path:      path,
		Referrer:  nullable(referrer),
	})
}

// RecordEvent appends a custom event. Properties are stored verbatim; nil
// means no properties were supplied.
func (s *Service) RecordEvent(ctx context.Context, sessionID string, eventType string, path string, properties map[string]interface{}) error {
	var props json.RawMessage
	if properties != nil {
		raw, err := json.Marshal(properties)
		if err != nil {
			return fmt.Errorf("failed to marshal event properties: %w", err)
		}
		props = raw
	}

	return s.store.CreateEvent(ctx, database.CreateEventParams{
		SessionID:  sessionID,
		Type:       eventType,
		Path:       path,
		Properties: props,
	})
}

// UpdateDuration sets the duration on the most recent pageview matching the
// session and path. A duration signal with no matching pageview (out-of-
// order delivery) is dropped silently.
func (s *Service) UpdateDuration(ctx context.Context, sessionID string, path string, seconds int) error {
	_, err := s.store.SetPageviewDuration(ctx, sessionID, path, seconds)
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

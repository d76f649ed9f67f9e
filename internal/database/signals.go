package database

import (
	"context"
	"encoding/json"

	"sitepulse/internal/models"
)

type CreatePageviewParams struct {
	SessionID string
	Path      string
	Referrer  *string
}

func (q *Queries) CreatePageview(ctx context.Context, arg CreatePageviewParams) error {
	query := `INSERT INTO pageviews (session_id, path, referrer) VALUES ($1, $2, $3)`
	_, err := q.db.Exec(ctx, query, arg.SessionID, arg.Path, arg.Referrer)
	return err
}

type CreateEventParams struct {
	SessionID  string
	Type       string
	Path       string
	Properties json.RawMessage
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	query := `INSERT INTO events (session_id, type, path, properties) VALUES ($1, $2, $3, $4)`
	_, err := q.db.Exec(ctx, query, arg.SessionID, arg.Type, arg.Path, arg.Properties)
	return err
}

// SetPageviewDuration writes the duration onto the most recently created
// pageview matching (sessionID, path). Ties on timestamp break towards the
// higher id. Returns false when no pageview matched, which callers treat as
// a no-op rather than an error.
func (q *Queries) SetPageviewDuration(ctx context.Context, sessionID string, path string, seconds int) (bool, error) {
	query := `
		UPDATE pageviews
		SET duration = $3
		WHERE id = (
			SELECT id FROM pageviews
			WHERE session_id = $1 AND path = $2
			ORDER BY timestamp DESC, id DESC
			LIMIT 1
		)
	`
	res, err := q.db.Exec(ctx, query, sessionID, path, seconds)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) GetPageviewsBySession(ctx context.Context, sessionID string) ([]models.Pageview, error) {
	query := `
		SELECT id, session_id, path, referrer, duration, timestamp
		FROM pageviews
		WHERE session_id = $1
		ORDER BY timestamp ASC, id ASC
	`
	rows, err := q.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pageviews []models.Pageview
	for rows.Next() {
		var pv models.Pageview
		err := rows.Scan(
			&pv.ID,
			&pv.SessionID,
			&pv.Path,
			&pv.Referrer,
			&pv.Duration,
			&pv.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		pageviews = append(pageviews, pv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if pageviews == nil {
		return []models.Pageview{}, nil
	}

	return pageviews, nil
}

func (q *Queries) GetEventsBySession(ctx context.Context, sessionID string) ([]models.Event, error) {
	query := `
		SELECT id, session_id, type, path, properties, created_at
		FROM events
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := q.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.SessionID,
			&event.Type,
			&event.Path,
			&event.Properties,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if events == nil {
		return []models.Event{}, nil
	}

	return events, nil
}

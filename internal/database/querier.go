package database

import (
	"context"
	"errors"

	"sitepulse/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) SessionExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM sessions WHERE id = $1)"
	err := q.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

type CreateSessionParams struct {
	ID      string
	Device  *string
	OS      *string
	Browser *string
	Country *string
}

// InsertSessionIfAbsent creates the session row unless one already exists
// for the id. ON CONFLICT DO NOTHING makes concurrent first-signals for the
// same id safe: the loser of the race simply inserts nothing. Returns
// whether a row was actually created.
func (q *Queries) InsertSessionIfAbsent(ctx context.Context, arg CreateSessionParams) (bool, error) {
	query := `
		INSERT INTO sessions (id, device, os, browser, country)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := q.db.Exec(ctx, query, arg.ID, arg.Device, arg.OS, arg.Browser, arg.Country)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) GetSessionByID(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, created_at, device, os, browser, country
		FROM sessions
		WHERE id = $1
	`
	var session models.Session
	err := q.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.CreatedAt,
		&session.Device,
		&session.OS,
		&session.Browser,
		&session.Country,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

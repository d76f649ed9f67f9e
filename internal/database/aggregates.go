package database

import (
	"context"
	"time"
)

type DayCount struct {
	Date  string `json:"date" example:"2025-11-03"`
	Views int64  `json:"views"`
}

// PageviewsByDay buckets pageviews since the given instant by their UTC
// calendar date. Dates without any pageview are not synthesized.
func (q *Queries) PageviewsByDay(ctx context.Context, since time.Time) ([]DayCount, error) {
	query := `
		SELECT to_char(timestamp AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS date, count(*) AS views
		FROM pageviews
		WHERE timestamp >= $1
		GROUP BY date
		ORDER BY date ASC
	`
	rows, err := q.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Date, &dc.Views); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if counts == nil {
		return []DayCount{}, nil
	}

	return counts, nil
}

type PageCount struct {
	Path  string `json:"path" example:"/pricing"`
	Views int64  `json:"views"`
}

func (q *Queries) TopPages(ctx context.Context, since time.Time, limit int) ([]PageCount, error) {
	query := `
		SELECT path, count(*) AS views
		FROM pageviews
		WHERE timestamp >= $1
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT $2
	`
	rows, err := q.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []PageCount
	for rows.Next() {
		var pc PageCount
		if err := rows.Scan(&pc.Path, &pc.Views); err != nil {
			return nil, err
		}
		pages = append(pages, pc)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if pages == nil {
		return []PageCount{}, nil
	}

	return pages, nil
}

type DimensionCount struct {
	Label string
	Count int64
}

type SessionStats struct {
	TotalSessions int64
	Devices       []DimensionCount
	Browsers      []DimensionCount
}

// SessionStats tallies sessions created since the given instant, grouped by
// device and by browser. NULL or empty dimension values count under the
// "Unknown" label instead of being dropped.
func (q *Queries) SessionStats(ctx context.Context, since time.Time) (*SessionStats, error) {
	var stats SessionStats

	countQuery := `SELECT count(*) FROM sessions WHERE created_at >= $1`
	if err := q.db.QueryRow(ctx, countQuery, since).Scan(&stats.TotalSessions); err != nil {
		return nil, err
	}

	devices, err := q.groupSessions(ctx, "device", since)
	if err != nil {
		return nil, err
	}
	stats.Devices = devices

	browsers, err := q.groupSessions(ctx, "browser", since)
	if err != nil {
		return nil, err
	}
	stats.Browsers = browsers

	return &stats, nil
}

// column is always one of the fixed names above, never caller input.
func (q *Queries) groupSessions(ctx context.Context, column string, since time.Time) ([]DimensionCount, error) {
	query := `
		SELECT COALESCE(NULLIF(` + column + `, ''), 'Unknown') AS label, count(*) AS count
		FROM sessions
		WHERE created_at >= $1
		GROUP BY label
		ORDER BY count DESC, label ASC
	`
	rows, err := q.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DimensionCount
	for rows.Next() {
		var dc DimensionCount
		if err := rows.Scan(&dc.Label, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if counts == nil {
		return []DimensionCount{}, nil
	}

	return counts, nil
}

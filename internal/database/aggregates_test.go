package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// The aggregate queries are global, so these tests clear the tables first
// instead of sharing rows with the rest of the suite.
func resetTables(t *testing.T) {
	t.Helper()
	_, err := testStore.pool.Exec(context.Background(),
		`TRUNCATE pageviews, events, sessions CASCADE`)
	require.NoError(t, err)
}

func insertSessionAt(t *testing.T, params CreateSessionParams, createdAt time.Time) {
	t.Helper()
	_, err := testStore.pool.Exec(context.Background(),
		`INSERT INTO sessions (id, created_at, device, os, browser, country) VALUES ($1, $2, $3, $4, $5, $6)`,
		params.ID, createdAt, params.Device, params.OS, params.Browser, params.Country)
	require.NoError(t, err)
}

func TestPageviewsByDay_WindowBucketing(t *testing.T) {
	resetTables(t)

	sessionID := uuid.New().String()
	createTestSession(t, CreateSessionParams{ID: sessionID})

	now := time.Now()
	// Rows spread across a 10-day range; only the trailing 7 days should
	// survive the window.
	viewsPerDayOffset := map[int]int{0: 3, 1: 1, 3: 2, 8: 4, 9: 1}
	for offset, views := range viewsPerDayOffset {
		for i := 0; i < views; i++ {
			insertPageviewAt(t, sessionID, "/", now.Add(-time.Duration(offset)*24*time.Hour))
		}
	}

	since := now.Add(-7 * 24 * time.Hour)
	counts, err := testStore.PageviewsByDay(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, counts, 3, "days outside the window and days without views must not appear")

	expected := map[string]int64{
		now.UTC().Format("2006-01-02"):                               3,
		now.Add(-1 * 24 * time.Hour).UTC().Format("2006-01-02"):      1,
		now.Add(-3 * 24 * time.Hour).UTC().Format("2006-01-02"):      2,
	}
	for _, dc := range counts {
		require.Equal(t, expected[dc.Date], dc.Views, "views for %s", dc.Date)
	}

	for i := 1; i < len(counts); i++ {
		require.Less(t, counts[i-1].Date, counts[i].Date, "dates must be sorted ascending")
	}
}

func TestTopPages_OrderAndTruncation(t *testing.T) {
	resetTables(t)

	sessionID := uuid.New().String()
	createTestSession(t, CreateSessionParams{ID: sessionID})

	now := time.Now()
	// 15 paths with distinct counts: /page-1 has 1 view ... /page-15 has 15.
	for i := 1; i <= 15; i++ {
		path := fmt.Sprintf("/page-%d", i)
		for v := 0; v < i; v++ {
			insertPageviewAt(t, sessionID, path, now)
		}
	}

	pages, err := testStore.TopPages(context.Background(), now.Add(-24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, pages, 10)

	require.Equal(t, "/page-15", pages[0].Path)
	require.Equal(t, int64(15), pages[0].Views)
	for i := 1; i < len(pages); i++ {
		require.Greater(t, pages[i-1].Views, pages[i].Views, "counts must be strictly descending")
	}
	require.Equal(t, int64(6), pages[9].Views)
}

func TestTopPages_WindowFilter(t *testing.T) {
	resetTables(t)

	sessionID := uuid.New().String()
	createTestSession(t, CreateSessionParams{ID: sessionID})

	now := time.Now()
	insertPageviewAt(t, sessionID, "/fresh", now)
	insertPageviewAt(t, sessionID, "/stale", now.Add(-9*24*time.Hour))

	pages, err := testStore.TopPages(context.Background(), now.Add(-7*24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, "/fresh", pages[0].Path)
}

func TestSessionStats(t *testing.T) {
	resetTables(t)

	now := time.Now()
	insertSessionAt(t, CreateSessionParams{
		ID: uuid.New().String(), Device: strPtr("desktop"), Browser: strPtr("Firefox"),
	}, now)
	insertSessionAt(t, CreateSessionParams{
		ID: uuid.New().String(), Device: strPtr("desktop"), Browser: strPtr("Chrome"),
	}, now)
	insertSessionAt(t, CreateSessionParams{
		ID: uuid.New().String(), Device: strPtr("mobile"), Browser: strPtr("Firefox"),
	}, now)
	// No device and no browser: must surface as "Unknown", not vanish.
	insertSessionAt(t, CreateSessionParams{ID: uuid.New().String()}, now)
	// Outside the window: must not count at all.
	insertSessionAt(t, CreateSessionParams{
		ID: uuid.New().String(), Device: strPtr("desktop"),
	}, now.Add(-10*24*time.Hour))

	stats, err := testStore.SessionStats(context.Background(), now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(4), stats.TotalSessions)

	devices := map[string]int64{}
	for _, d := range stats.Devices {
		devices[d.Label] = d.Count
	}
	require.Equal(t, map[string]int64{"desktop": 2, "mobile": 1, "Unknown": 1}, devices)

	browsers := map[string]int64{}
	for _, b := range stats.Browsers {
		browsers[b.Label] = b.Count
	}
	require.Equal(t, map[string]int64{"Firefox": 2, "Chrome": 1, "Unknown": 1}, browsers)
}

func TestSessionStats_EmptyWindow(t *testing.T) {
	resetTables(t)

	stats, err := testStore.SessionStats(context.Background(), time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.TotalSessions)
	require.Empty(t, stats.Devices)
	require.Empty(t, stats.Browsers)
}

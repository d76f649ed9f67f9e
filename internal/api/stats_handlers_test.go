package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodDays(t *testing.T) {
	cases := []struct {
		period string
		want   int
	}{
		{"7d", 7},
		{"30d", 30},
		{"14", 14},
		{"12x3", 12},
		{"", 7},
		{"abc", 7},
		{"0d", 7},
		{"-3d", 7},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, parsePeriodDays(tc.period), "parsePeriodDays(%q)", tc.period)
	}
}

func seedSessionAt(t *testing.T, device, browser string, createdAt time.Time) string {
	t.Helper()
	id := uuid.New().String()
	var devicePtr, browserPtr *string
	if device != "" {
		devicePtr = &device
	}
	if browser != "" {
		browserPtr = &browser
	}
	_, err := testStore.GetPool().Exec(context.Background(),
		`INSERT INTO sessions (id, created_at, device, browser) VALUES ($1, $2, $3, $4)`,
		id, createdAt, devicePtr, browserPtr)
	require.NoError(t, err)
	return id
}

func seedPageviewAt(t *testing.T, sessionID, path string, ts time.Time) {
	t.Helper()
	_, err := testStore.GetPool().Exec(context.Background(),
		`INSERT INTO pageviews (session_id, path, timestamp) VALUES ($1, $2, $3)`,
		sessionID, path, ts)
	require.NoError(t, err)
}

func TestPageviewsHandler(t *testing.T) {
	resetTables(t)

	now := time.Now()
	sessionID := seedSessionAt(t, "", "", now)
	seedPageviewAt(t, sessionID, "/", now)
	seedPageviewAt(t, sessionID, "/", now)
	seedPageviewAt(t, sessionID, "/docs", now.Add(-2*24*time.Hour))
	seedPageviewAt(t, sessionID, "/", now.Add(-9*24*time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/pageviews?period=7d", nil)
	rec := httptest.NewRecorder()
	testServer.PageviewsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Data []struct {
			Date  string `json:"date"`
			Views int64  `json:"views"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2, "the day outside the window must not appear")

	totals := map[string]int64{}
	for _, d := range resp.Data {
		totals[d.Date] = d.Views
	}
	require.Equal(t, int64(2), totals[now.UTC().Format("2006-01-02")])
	require.Equal(t, int64(1), totals[now.Add(-2*24*time.Hour).UTC().Format("2006-01-02")])
}

func TestPageviewsHandler_EmptyWindow(t *testing.T) {
	resetTables(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/pageviews", nil)
	rec := httptest.NewRecorder()
	testServer.PageviewsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestTopPagesHandler(t *testing.T) {
	resetTables(t)

	now := time.Now()
	sessionID := seedSessionAt(t, "", "", now)
	for i := 0; i < 3; i++ {
		seedPageviewAt(t, sessionID, "/pricing", now)
	}
	seedPageviewAt(t, sessionID, "/docs", now)
	seedPageviewAt(t, sessionID, "/docs", now)
	seedPageviewAt(t, sessionID, "/", now)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/top-pages?period=7d&limit=2", nil)
	rec := httptest.NewRecorder()
	testServer.TopPagesHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			Path  string `json:"path"`
			Views int64  `json:"views"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, "/pricing", resp.Data[0].Path)
	require.Equal(t, int64(3), resp.Data[0].Views)
	require.Equal(t, "/docs", resp.Data[1].Path)
	require.Equal(t, int64(2), resp.Data[1].Views)
}

func TestTopPagesHandler_LimitFallsBackToDefault(t *testing.T) {
	resetTables(t)

	now := time.Now()
	sessionID := seedSessionAt(t, "", "", now)
	for i := 0; i < 12; i++ {
		seedPageviewAt(t, sessionID, "/page-"+uuid.New().String(), now)
	}

	for _, raw := range []string{"", "garbage", "0", "-5"} {
		target := "/api/analytics/top-pages"
		if raw != "" {
			target += "?limit=" + raw
		}
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		testServer.TopPagesHandler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 10, "limit=%q must fall back to 10", raw)
	}
}

func TestSessionStatsHandler(t *testing.T) {
	resetTables(t)

	now := time.Now()
	seedSessionAt(t, "desktop", "Firefox", now)
	seedSessionAt(t, "desktop", "Chrome", now)
	seedSessionAt(t, "mobile", "Firefox", now)
	seedSessionAt(t, "", "", now)
	seedSessionAt(t, "desktop", "Firefox", now.Add(-10*24*time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/sessions/stats?period=7d", nil)
	rec := httptest.NewRecorder()
	testServer.SessionStatsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalSessions int64 `json:"totalSessions"`
		Devices       []struct {
			Device string `json:"device"`
			Count  int64  `json:"count"`
		} `json:"devices"`
		Browsers []struct {
			Browser string `json:"browser"`
			Count   int64  `json:"count"`
		} `json:"browsers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(4), resp.TotalSessions)

	devices := map[string]int64{}
	for _, d := range resp.Devices {
		devices[d.Device] = d.Count
	}
	require.Equal(t, map[string]int64{"desktop": 2, "mobile": 1, "Unknown": 1}, devices)

	browsers := map[string]int64{}
	for _, b := range resp.Browsers {
		browsers[b.Browser] = b.Count
	}
	require.Equal(t, map[string]int64{"Firefox": 2, "Chrome": 1, "Unknown": 1}, browsers)
}

func TestStatsHandlers_StoreFailure(t *testing.T) {
	server := newBrokenServer(t)

	handlers := map[string]http.HandlerFunc{
		"/api/analytics/pageviews":      server.PageviewsHandler,
		"/api/analytics/top-pages":      server.TopPagesHandler,
		"/api/analytics/sessions/stats": server.SessionStatsHandler,
	}
	for target, handler := range handlers {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code, target)
		require.JSONEq(t, `{"error":"Internal error"}`, rec.Body.String(), target)
	}
}

func TestSessionStatsHandler_Empty(t *testing.T) {
	resetTables(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/sessions/stats", nil)
	rec := httptest.NewRecorder()
	testServer.SessionStatsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"totalSessions":0,"devices":[],"browsers":[]}`, rec.Body.String())
}

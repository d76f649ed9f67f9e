package api

import (
	"net/http"
	"strconv"
	"time"

	"sitepulse/internal/database"
)

const defaultPeriodDays = 7

// parsePeriodDays turns a trailing-window parameter such as "7d" or "30d"
// into a day count. Any suffix after the leading digits is tolerated;
// missing, unparseable or zero values fall back to the 7-day default.
func parsePeriodDays(period string) int {
	i := 0
	for i < len(period) && period[i] >= '0' && period[i] <= '9' {
		i++
	}
	if i == 0 {
		return defaultPeriodDays
	}
	days, err := strconv.Atoi(period[:i])
	if err != nil || days == 0 {
		return defaultPeriodDays
	}
	return days
}

func windowStart(period string) time.Time {
	days := parsePeriodDays(period)
	return time.Now().AddDate(0, 0, -days)
}

type timeSeriesResponse struct {
	Data []database.DayCount `json:"data"`
}

// @Summary      Pageview time series
// @Description  Daily pageview counts over the trailing window. Only UTC dates with at least one view appear.
// @Tags         analytics
// @Produce      json
// @Param        period  query     string  false  "trailing window, e.g. 7d"  default(7d)
// @Success      200     {object}  timeSeriesResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/analytics/pageviews [get]
func (s *Server) PageviewsHandler(w http.ResponseWriter, r *http.Request) {
	since := windowStart(r.URL.Query().Get("period"))

	counts, err := s.store.PageviewsByDay(r.Context(), since)
	if err != nil {
		s.logger.Error("failed to aggregate pageviews", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	respondJSON(w, http.StatusOK, timeSeriesResponse{Data: counts})
}

type topPagesResponse struct {
	Data []database.PageCount `json:"data"`
}

// @Summary      Top pages
// @Description  Paths ranked by pageview count over the trailing window.
// @Tags         analytics
// @Produce      json
// @Param        period  query     string  false  "trailing window, e.g. 7d"  default(7d)
// @Param        limit   query     int     false  "maximum entries"           default(10)
// @Success      200     {object}  topPagesResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/analytics/top-pages [get]
func (s *Server) TopPagesHandler(w http.ResponseWriter, r *http.Request) {
	since := windowStart(r.URL.Query().Get("period"))

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	pages, err := s.store.TopPages(r.Context(), since, limit)
	if err != nil {
		s.logger.Error("failed to aggregate top pages", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	respondJSON(w, http.StatusOK, topPagesResponse{Data: pages})
}

type deviceCount struct {
	Device string `json:"device" example:"desktop"`
	Count  int64  `json:"count"`
}

type browserCount struct {
	Browser string `json:"browser" example:"Firefox"`
	Count   int64  `json:"count"`
}

type sessionStatsResponse struct {
	TotalSessions int64          `json:"totalSessions"`
	Devices       []deviceCount  `json:"devices"`
	Browsers      []browserCount `json:"browsers"`
}

// @Summary      Session statistics
// @Description  Session totals with device and browser breakdowns over the trailing window. Sessions without a recorded value appear under "Unknown".
// @Tags         analytics
// @Produce      json
// @Param        period  query     string  false  "trailing window, e.g. 7d"  default(7d)
// @Success      200     {object}  sessionStatsResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/analytics/sessions/stats [get]
func (s *Server) SessionStatsHandler(w http.ResponseWriter, r *http.Request) {
	since := windowStart(r.URL.Query().Get("period"))

	stats, err := s.store.SessionStats(r.Context(), since)
	if err != nil {
		s.logger.Error("failed to aggregate session stats", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	resp := sessionStatsResponse{
		TotalSessions: stats.TotalSessions,
		Devices:       make([]deviceCount, 0, len(stats.Devices)),
		Browsers:      make([]browserCount, 0, len(stats.Browsers)),
	}
	for _, d := range stats.Devices {
		resp.Devices = append(resp.Devices, deviceCount{Device: d.Label, Count: d.Count})
	}
	for _, b := range stats.Browsers {
		resp.Browsers = append(resp.Browsers, browserCount{Browser: b.Label, Count: b.Count})
	}

	respondJSON(w, http.StatusOK, resp)
}

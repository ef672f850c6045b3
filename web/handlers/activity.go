package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/memobook/memobook/internal/store"
)

// ActivityHandler handles the /api/activity endpoint.
type ActivityHandler struct {
	store *store.Store
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(s *store.Store) *ActivityHandler {
	return &ActivityHandler{store: s}
}

// ActivityPoint represents a single day in the activity series.
type ActivityPoint struct {
	Date  string `json:"date"`  // YYYY-MM-DD (UTC)
	Count int    `json:"count"` // Number of memos created on this day
}

// ActivityResponse is the JSON response for GET /api/activity.
type ActivityResponse struct {
	Points []ActivityPoint `json:"points"`
	Days   int             `json:"days"`
}

// GetActivity handles GET /api/activity?days={n}.
// It returns a daily series of memo creation counts for the heatmap,
// covering the last n days (default 30, capped at 365). Days without any
// memos appear with a zero count so the series has no gaps.
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "days must be a positive integer", err)
			return
		}
		days = n
	}
	if days > 365 {
		days = 365
	}

	counts := make(map[string]int)
	for _, memo := range h.store.List() {
		counts[memo.CreatedAt.UTC().Format("2006-01-02")]++
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	points := make([]ActivityPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		points = append(points, ActivityPoint{Date: day, Count: counts[day]})
	}

	respondJSON(w, http.StatusOK, ActivityResponse{Points: points, Days: days})
}

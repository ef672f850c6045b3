package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memobook/memobook/internal/store"
)

func getActivity(t *testing.T, h *ActivityHandler, url string) (*httptest.ResponseRecorder, ActivityResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.GetActivity(rec, req)

	var resp ActivityResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestGetActivityDefaultsTo30Days(t *testing.T) {
	h := NewActivityHandler(store.New(newMemKV()))

	rec, resp := getActivity(t, h, "/api/activity")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, resp.Days)
	assert.Len(t, resp.Points, 30)
}

func TestGetActivityCountsPerDay(t *testing.T) {
	s := store.New(newMemKV())
	s.Create("memo one")
	s.Create("memo two")
	h := NewActivityHandler(s)

	rec, resp := getActivity(t, h, "/api/activity?days=7")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Points, 7)

	// Two created now plus one seed today; the other seed is a day old.
	today := resp.Points[len(resp.Points)-1]
	assert.Equal(t, 3, today.Count)

	total := 0
	for _, p := range resp.Points {
		total += p.Count
	}
	assert.Equal(t, 4, total, "every memo lands in exactly one bucket")
}

func TestGetActivityZeroFillsQuietDays(t *testing.T) {
	h := NewActivityHandler(store.New(newMemKV()))

	_, resp := getActivity(t, h, "/api/activity?days=10")
	require.Len(t, resp.Points, 10)
	for _, p := range resp.Points[:8] {
		assert.Zero(t, p.Count, "day %s should be empty", p.Date)
	}
}

func TestGetActivityRejectsBadDays(t *testing.T) {
	h := NewActivityHandler(store.New(newMemKV()))

	for _, v := range []string{"0", "-3", "soon"} {
		rec, _ := getActivity(t, h, "/api/activity?days="+v)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "days=%s", v)
	}
}

func TestGetActivityCapsAtOneYear(t *testing.T) {
	h := NewActivityHandler(store.New(newMemKV()))

	rec, resp := getActivity(t, h, "/api/activity?days=5000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 365, resp.Days)
	assert.Len(t, resp.Points, 365)
}

package dashboard

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/qepting91/dex-ai/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(board *Board) http.Handler {
	r := chi.NewRouter()
	Mount(r, board, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDashboard_Loading(t *testing.T) {
	h := newRouter(&Board{})
	assert.Equal(t, http.StatusServiceUnavailable, get(h, "/").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(h, "/api/top").Code)
}

func TestDashboard_Ready(t *testing.T) {
	board := &Board{}
	board.Set([]view.Board{{
		Stat:  "speed",
		Label: "Speed",
		Entries: []view.Entry{
			{Rank: 1, ID: 291, Name: "ninjask", Value: 160},
			{Rank: 2, ID: 101, Name: "electrode", Value: 150},
		},
	}})
	h := newRouter(board)

	page := get(h, "/")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "echarts")
	assert.Contains(t, page.Body.String(), "ninjask")

	api := get(h, "/api/top")
	require.Equal(t, http.StatusOK, api.Code)
	var boards []view.Board
	require.NoError(t, json.Unmarshal(api.Body.Bytes(), &boards))
	require.Len(t, boards, 1)
	assert.Equal(t, "electrode", boards[0].Entries[1].Name)
}

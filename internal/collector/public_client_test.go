package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qepting91/dex-ai/internal/config"
	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squirtleJSON = `{
  "id": 7,
  "name": "squirtle",
  "sprites": {"front_default": "https://img/7.png"},
  "types": [{"slot": 1, "type": {"name": "water"}}],
  "stats": [
    {"base_stat": 44, "stat": {"name": "hp"}},
    {"base_stat": 48, "stat": {"name": "attack"}},
    {"base_stat": 65, "stat": {"name": "defense"}},
    {"base_stat": 50, "stat": {"name": "special-attack"}},
    {"base_stat": 64, "stat": {"name": "special-defense"}},
    {"base_stat": 43, "stat": {"name": "speed"}}
  ]
}`

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"count": 2, "results": [
			{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"},
			{"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon/2/"}]}`))
	})
	mux.HandleFunc("/type/water", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pokemon": [
			{"pokemon": {"name": "squirtle", "url": "https://pokeapi.co/api/v2/pokemon/7/"}, "slot": 1}]}`))
	})
	mux.HandleFunc("/pokemon/squirtle", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(squirtleJSON))
	})
	mux.HandleFunc("/pokemon/missingno", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPublicClient_ListPage(t *testing.T) {
	srv := newFakeAPI(t)
	pc := NewPublicClient(srv.URL, "test-agent", 0, 1)

	refs, err := pc.ListPage(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "ivysaur", refs[1].Name)
	assert.Equal(t, "2", refs[1].ID())
}

func TestPublicClient_ListCategory(t *testing.T) {
	srv := newFakeAPI(t)
	pc := NewPublicClient(srv.URL+"/", "test-agent", 0, 1)

	refs, err := pc.ListCategory(context.Background(), "water")
	require.NoError(t, err)
	assert.Equal(t, []domain.Reference{{Name: "squirtle", URL: "https://pokeapi.co/api/v2/pokemon/7/"}}, refs)
}

func TestPublicClient_FetchRecord(t *testing.T) {
	srv := newFakeAPI(t)
	pc := NewPublicClient(srv.URL, "test-agent", 100, 5)

	rec, err := pc.FetchRecord(context.Background(), pc.RecordURL(" Squirtle "))
	require.NoError(t, err)
	assert.Equal(t, 7, rec.ID)
	assert.Equal(t, "squirtle", rec.Name)
	assert.Equal(t, []string{"water"}, rec.Types)
	assert.Equal(t, "https://img/7.png", rec.Sprite)
	assert.Equal(t, 65, rec.Stat(domain.StatDefense))
	assert.Len(t, rec.Stats, 6)
}

func TestPublicClient_StatusError(t *testing.T) {
	srv := newFakeAPI(t)
	pc := NewPublicClient(srv.URL, "test-agent", 0, 1)

	_, err := pc.FetchRecord(context.Background(), pc.RecordURL("missingno"))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestMockClient(t *testing.T) {
	mc := NewMockClient(40)
	ctx := context.Background()

	page, err := mc.ListPage(ctx, 30, 20)
	require.NoError(t, err)
	assert.Len(t, page, 10)

	water, err := mc.ListCategory(ctx, "water")
	require.NoError(t, err)
	require.NotEmpty(t, water)

	rec, err := mc.FetchRecord(ctx, water[0].URL)
	require.NoError(t, err)
	assert.Contains(t, rec.Types, "water")

	byName, err := mc.FetchRecord(ctx, mc.RecordURL(rec.Name))
	require.NoError(t, err)
	assert.Equal(t, rec, byName)

	_, err = mc.FetchRecord(ctx, mc.RecordURL("mockmon-41"))
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	cfg := config.Default()
	src, err := NewSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &PublicClient{}, src)

	cfg.Mode = "mock"
	src, err = NewSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &MockClient{}, src)

	cfg.Mode = "api"
	_, err = NewSource(cfg)
	assert.Error(t, err)
}

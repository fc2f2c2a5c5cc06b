package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls atomic.Int32
	err   error
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls.Add(1)
	if g.err != nil {
		return "", g.err
	}
	return "narrated: " + prompt, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/gemini", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGemini_OK(t *testing.T) {
	gen := &fakeGenerator{}
	rec := post(t, NewRouter(gen, discard()), `{"prompt":"pikachu vs eevee"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"narrated: pikachu vs eevee"}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestGemini_EmptyPromptRejectedBeforeUpstream(t *testing.T) {
	gen := &fakeGenerator{}
	h := NewRouter(gen, discard())

	for _, body := range []string{`{"prompt":""}`, `{"prompt":"   "}`, `{}`, `not json`} {
		rec := post(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), `"error"`, body)
	}
	assert.Zero(t, gen.calls.Load())
}

func TestGemini_UpstreamFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota")}
	rec := post(t, NewRouter(gen, discard()), `{"prompt":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "quota")
}

func TestPreflightAndHealth(t *testing.T) {
	h := NewRouter(&fakeGenerator{}, discard())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/gemini", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClient_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(NewRouter(&fakeGenerator{}, discard()))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	text, err := c.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "narrated: hello", text)

	_, err = c.Generate(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(NewRouter(&fakeGenerator{err: errors.New("down")}, discard()))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNewGenAIGenerator_RequiresKey(t *testing.T) {
	_, err := NewGenAIGenerator(context.Background(), "", "gemini-2.0-flash")
	assert.Error(t, err)
}

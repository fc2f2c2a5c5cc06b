package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qepting91/dex-ai/internal/domain"
	"golang.org/x/time/rate"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi status %d for %s", e.Code, e.URL)
}

// PublicClient talks to the public PokeAPI over plain HTTP.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
}

type listResponse struct {
	Count   int                `json:"count"`
	Results []domain.Reference `json:"results"`
}

type typeResponse struct {
	Pokemon []struct {
		Pokemon domain.Reference `json:"pokemon"`
	} `json:"pokemon"`
}

type pokemonResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
}

func NewPublicClient(baseURL, userAgent string, perSecond float64, burst int) *PublicClient {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &PublicClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(limit, burst),
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
	}
}

func (pc *PublicClient) ListPage(ctx context.Context, offset, limit int) ([]domain.Reference, error) {
	u := fmt.Sprintf("%s/pokemon?offset=%d&limit=%d", pc.baseURL, offset, limit)
	var resp listResponse
	if err := pc.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (pc *PublicClient) ListCategory(ctx context.Context, category string) ([]domain.Reference, error) {
	u := fmt.Sprintf("%s/type/%s", pc.baseURL, url.PathEscape(category))
	var resp typeResponse
	if err := pc.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	refs := make([]domain.Reference, 0, len(resp.Pokemon))
	for _, p := range resp.Pokemon {
		refs = append(refs, p.Pokemon)
	}
	return refs, nil
}

func (pc *PublicClient) FetchRecord(ctx context.Context, url string) (domain.Record, error) {
	var resp pokemonResponse
	if err := pc.getJSON(ctx, url, &resp); err != nil {
		return domain.Record{}, err
	}

	rec := domain.Record{
		ID:    resp.ID,
		Name:  resp.Name,
		Stats: make(map[string]int, len(resp.Stats)),
	}
	if resp.Sprites.FrontDefault != nil {
		rec.Sprite = *resp.Sprites.FrontDefault
	}
	for _, t := range resp.Types {
		rec.Types = append(rec.Types, t.Type.Name)
	}
	for _, s := range resp.Stats {
		rec.Stats[s.Stat.Name] = s.BaseStat
	}
	return rec, nil
}

func (pc *PublicClient) RecordURL(name string) string {
	return fmt.Sprintf("%s/pokemon/%s", pc.baseURL, url.PathEscape(strings.ToLower(strings.TrimSpace(name))))
}

func (pc *PublicClient) getJSON(ctx context.Context, u string, out any) error {
	if err := pc.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", pc.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, URL: u}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}

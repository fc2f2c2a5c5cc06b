package fetcher

import (
	"context"
	"log/slog"

	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/qepting91/dex-ai/internal/retry"
	"golang.org/x/sync/errgroup"
)

// Result is the settlement of one detail fetch.
type Result struct {
	URL    string
	Record domain.Record
	Err    error
}

// Fetcher resolves reference URLs to records in fixed-size batches.
type Fetcher struct {
	src       domain.Source
	batchSize int
	policy    retry.Policy
	logger    *slog.Logger
}

func New(src domain.Source, batchSize int, policy retry.Policy, logger *slog.Logger) *Fetcher {
	if batchSize <= 0 {
		batchSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{src: src, batchSize: batchSize, policy: policy, logger: logger}
}

// Resolve returns records for urls in input order. URLs already in cache are
// not fetched again; failed items are omitted. On cancellation it returns
// ctx.Err() and leaves cache untouched.
func (f *Fetcher) Resolve(ctx context.Context, cache *Cache, urls []string) ([]domain.Record, error) {
	hits, missing := cache.lookup(urls)

	fresh := make(map[string]domain.Record, len(missing))
	failed := 0
	err := f.settle(ctx, missing, func(r Result) {
		if r.Err != nil {
			failed++
			f.logger.Warn("Detail fetch failed", "url", r.URL, "err", r.Err)
			return
		}
		fresh[r.URL] = r.Record
	})
	if err != nil {
		return nil, err
	}

	if len(fresh) > 0 && !cache.Merge(ctx, fresh) {
		return nil, ctx.Err()
	}
	if len(missing) > 0 {
		f.logger.Debug("Details resolved", "requested", len(missing), "resolved", len(fresh), "failed", failed)
	}

	out := make([]domain.Record, 0, len(urls))
	seen := make(map[int]bool, len(urls))
	for _, u := range urls {
		r, ok := hits[u]
		if !ok {
			r, ok = fresh[u]
		}
		if !ok || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out, nil
}

// Stream resolves urls without a cache and sends each settled result in
// batch order. It closes nothing; the caller owns out.
func (f *Fetcher) Stream(ctx context.Context, urls []string, out chan<- Result) error {
	return f.settle(ctx, urls, func(r Result) {
		select {
		case out <- r:
		case <-ctx.Done():
		}
	})
}

// settle runs batches strictly in sequence. Within a batch every fetch runs
// concurrently and one failure never cancels its siblings.
func (f *Fetcher) settle(ctx context.Context, urls []string, emit func(Result)) error {
	for start := 0; start < len(urls); start += f.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch := urls[start:min(start+f.batchSize, len(urls))]
		results := make([]Result, len(batch))

		var g errgroup.Group
		for i, u := range batch {
			g.Go(func() error {
				rec, err := retry.Do(ctx, f.policy, func(ctx context.Context) (domain.Record, error) {
					return f.src.FetchRecord(ctx, u)
				})
				results[i] = Result{URL: u, Record: rec, Err: err}
				return nil
			})
		}
		g.Wait()

		if err := ctx.Err(); err != nil {
			return err
		}
		for _, r := range results {
			emit(r)
		}
	}
	return nil
}

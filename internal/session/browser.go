package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/qepting91/dex-ai/internal/collector"
	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/qepting91/dex-ai/internal/fetcher"
	"github.com/qepting91/dex-ai/internal/view"
)

// View is what the browse screen renders after an action.
type View struct {
	Category string
	Term     string
	Cursor   int
	Total    int
	Records  []domain.Record
	HasMore  bool
	// Stale marks an invocation that was superseded or canceled; nothing
	// it fetched reached the session.
	Stale bool
}

// Empty is the "nothing found" state.
func (v View) Empty() bool {
	return !v.Stale && len(v.Records) == 0
}

// Browser owns the cache and view state of one browse screen.
type Browser struct {
	collector *collector.Collector
	fetcher   *fetcher.Fetcher
	logger    *slog.Logger

	initialVisible int
	step           int

	mu       sync.Mutex
	cache    *fetcher.Cache
	gen      uint64
	cancel   context.CancelFunc
	category string
	term     string
	cursor   int
	refs     []domain.Reference
	visible  []domain.Record

	// pending is a category switch that has not committed yet.
	pending   string
	switching bool
}

func NewBrowser(c *collector.Collector, f *fetcher.Fetcher, initialVisible, step int, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{
		collector:      c,
		fetcher:        f,
		logger:         logger,
		initialVisible: initialVisible,
		step:           step,
		cache:          fetcher.NewCache(),
		cursor:         initialVisible,
	}
}

// SelectCategory collects the reference list for category, clears the
// cache, resets the cursor and resolves the first page.
func (b *Browser) SelectCategory(ctx context.Context, category string) View {
	ctx, gen := b.beginSwitch(ctx, category)
	if !b.switchCategory(ctx, gen, category) {
		return b.stale()
	}
	return b.refresh(ctx, gen)
}

// Search sets the free-text term and resolves the matches. A category
// switch still collecting is finished first.
func (b *Browser) Search(ctx context.Context, term string) View {
	ctx, gen := b.begin(ctx)
	if !b.finishPending(ctx, gen) {
		return b.stale()
	}
	b.mu.Lock()
	b.term = term
	b.mu.Unlock()
	return b.refresh(ctx, gen)
}

// LoadMore grows the pagination cursor by one step. A category switch
// still collecting is finished first.
func (b *Browser) LoadMore(ctx context.Context) View {
	ctx, gen := b.begin(ctx)
	if !b.finishPending(ctx, gen) {
		return b.stale()
	}
	b.mu.Lock()
	b.cursor = view.NextCursor(b.cursor, b.step, len(b.refs))
	b.mu.Unlock()
	return b.refresh(ctx, gen)
}

// switchCategory collects category and commits it with a cleared cache.
// It reports false when the invocation was superseded.
func (b *Browser) switchCategory(ctx context.Context, gen uint64, category string) bool {
	refs, err := b.collector.Collect(ctx, category)
	if err != nil {
		if canceled(ctx, err) {
			b.logger.Debug("Collection superseded", "category", category)
			return false
		}
		b.logger.Warn("Collection failed", "category", category, "err", err)
		refs = nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return false
	}
	b.category = category
	b.refs = refs
	b.cursor = b.initialVisible
	b.visible = nil
	b.cache.Reset()
	b.pending = ""
	b.switching = false
	return true
}

func (b *Browser) finishPending(ctx context.Context, gen uint64) bool {
	b.mu.Lock()
	category, switching := b.pending, b.switching
	b.mu.Unlock()
	if !switching {
		return true
	}
	return b.switchCategory(ctx, gen, category)
}

// Snapshot returns the current view without fetching.
func (b *Browser) Snapshot() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// CacheLen is the number of resolved records held by the session.
func (b *Browser) CacheLen() int {
	return b.cache.Len()
}

// Close cancels any in-flight invocation.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.gen++
}

// begin supersedes the running invocation.
func (b *Browser) begin(parent context.Context) (context.Context, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.beginLocked(parent)
}

// beginSwitch supersedes the running invocation and records category as
// the pending selection.
func (b *Browser) beginSwitch(parent context.Context, category string) (context.Context, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = category
	b.switching = true
	return b.beginLocked(parent)
}

func (b *Browser) beginLocked(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)
	if b.cancel != nil {
		b.cancel()
	}
	b.cancel = cancel
	b.gen++
	return ctx, b.gen
}

func (b *Browser) refresh(ctx context.Context, gen uint64) View {
	b.mu.Lock()
	refs := view.VisibleReferences(b.refs, b.term, b.cursor)
	b.mu.Unlock()

	records, err := b.fetcher.Resolve(ctx, b.cache, view.URLs(refs))
	if err != nil {
		if !canceled(ctx, err) {
			b.logger.Warn("Resolve failed", "err", err)
		}
		return b.stale()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return b.staleLocked()
	}
	b.visible = records
	return b.snapshotLocked()
}

func (b *Browser) stale() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.staleLocked()
}

func (b *Browser) staleLocked() View {
	v := b.snapshotLocked()
	v.Stale = true
	return v
}

func (b *Browser) snapshotLocked() View {
	records := make([]domain.Record, len(b.visible))
	copy(records, b.visible)
	return View{
		Category: b.category,
		Term:     b.term,
		Cursor:   b.cursor,
		Total:    len(b.refs),
		Records:  records,
		HasMore:  view.HasMore(b.term, b.cursor, len(b.refs)),
	}
}

// canceled tells an expected cancellation apart from a genuine failure.
func canceled(ctx context.Context, err error) bool {
	return err != nil && (ctx.Err() != nil || errors.Is(err, context.Canceled))
}

package collector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/qepting91/dex-ai/internal/retry"
)

// Collector produces the ordered reference list for a category filter.
type Collector struct {
	src         domain.Source
	pageSize    int
	catalogSize int
	policy      retry.Policy
	logger      *slog.Logger
}

func New(src domain.Source, pageSize, catalogSize int, policy retry.Policy, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		src:         src,
		pageSize:    pageSize,
		catalogSize: catalogSize,
		policy:      policy,
		logger:      logger,
	}
}

// Collect returns references in source order. Any failed request discards
// the partial list. Cancellation is returned as ctx.Err().
func (c *Collector) Collect(ctx context.Context, category string) ([]domain.Reference, error) {
	if !domain.ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if category != domain.CategoryAll {
		refs, err := retry.Do(ctx, c.policy, func(ctx context.Context) ([]domain.Reference, error) {
			return c.src.ListCategory(ctx, category)
		})
		if err != nil {
			return nil, err
		}
		return refs, nil
	}

	var all []domain.Reference
	for offset := 0; offset < c.catalogSize; offset += c.pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		limit := min(c.pageSize, c.catalogSize-offset)
		page, err := retry.Do(ctx, c.policy, func(ctx context.Context) ([]domain.Reference, error) {
			return c.src.ListPage(ctx, offset, limit)
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		c.logger.Debug("Page collected", "offset", offset, "count", len(page))
		if len(page) < limit {
			break
		}
	}
	return all, nil
}

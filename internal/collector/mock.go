package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/qepting91/dex-ai/internal/domain"
)

const mockBase = "mock://pokeapi/api/v2"

// MockClient implements domain.Source over a generated offline catalog.
type MockClient struct {
	size int
}

func NewMockClient(size int) *MockClient {
	return &MockClient{size: size}
}

func (mc *MockClient) ListPage(ctx context.Context, offset, limit int) ([]domain.Reference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var refs []domain.Reference
	for id := offset + 1; id <= offset+limit && id <= mc.size; id++ {
		refs = append(refs, mockRef(id))
	}
	return refs, nil
}

func (mc *MockClient) ListCategory(ctx context.Context, category string) ([]domain.Reference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var refs []domain.Reference
	for id := 1; id <= mc.size; id++ {
		for _, t := range mockTypes(id) {
			if t == category {
				refs = append(refs, mockRef(id))
				break
			}
		}
	}
	return refs, nil
}

func (mc *MockClient) FetchRecord(ctx context.Context, url string) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return domain.Record{}, err
	}
	key := domain.IDFromURL(url)
	id := 0
	if _, err := fmt.Sscanf(key, "%d", &id); err != nil {
		id = mc.idForName(key)
	}
	if id < 1 || id > mc.size {
		return domain.Record{}, &StatusError{Code: 404, URL: url}
	}

	stats := make(map[string]int, len(domain.TrackedStats))
	for i, s := range domain.TrackedStats {
		// Spread values so leaderboards have a visible order.
		stats[s] = 20 + (id*(7+i*3))%130
	}
	return domain.Record{
		ID:     id,
		Name:   mockName(id),
		Types:  mockTypes(id),
		Sprite: fmt.Sprintf("%s/sprites/%d.png", mockBase, id),
		Stats:  stats,
	}, nil
}

func (mc *MockClient) RecordURL(name string) string {
	return fmt.Sprintf("%s/pokemon/%s", mockBase, strings.ToLower(strings.TrimSpace(name)))
}

func (mc *MockClient) idForName(name string) int {
	var id int
	if _, err := fmt.Sscanf(name, "mockmon-%d", &id); err != nil {
		return 0
	}
	return id
}

func mockRef(id int) domain.Reference {
	return domain.Reference{
		Name: mockName(id),
		URL:  fmt.Sprintf("%s/pokemon/%d/", mockBase, id),
	}
}

func mockName(id int) string {
	return fmt.Sprintf("mockmon-%d", id)
}

func mockTypes(id int) []string {
	tags := domain.Categories[1:]
	primary := tags[id%len(tags)]
	if id%3 == 0 {
		return []string{primary, tags[(id/3)%len(tags)]}
	}
	return []string{primary}
}

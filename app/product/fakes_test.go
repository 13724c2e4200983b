package product

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"

	"catalog/domain"
	"catalog/pkg/assets"
	"catalog/pkg/events"
)

func ptrTo[T any](v T) *T {
	return &v
}

// fakeRepository keeps products in memory and mirrors the store's
// query semantics: case-sensitive substring matching, price ordering,
// offset/limit windowing.
type fakeRepository struct {
	mu         sync.Mutex
	nextID     int64
	products   map[int64]domain.Product
	categories map[int64]domain.Category

	failCreate     bool
	vanishOnUpdate bool
}

func newFakeRepository(categories ...domain.Category) *fakeRepository {
	f := &fakeRepository{
		products:   make(map[int64]domain.Product),
		categories: make(map[int64]domain.Category),
	}
	for _, c := range categories {
		f.categories[c.ID] = c
	}
	return f
}

func (f *fakeRepository) Close() error { return nil }

func (f *fakeRepository) seed(p domain.Product) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.products[p.ID] = p
	return p.ID
}

func matches(p domain.Product, filter ListFilter) bool {
	if filter.CategoryID > 0 && p.CategoryID != filter.CategoryID {
		return false
	}
	if filter.Name != "" && !strings.Contains(p.Name, filter.Name) {
		return false
	}
	return true
}

func (f *fakeRepository) filtered(filter ListFilter) []domain.Product {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		if matches(p, filter) {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeRepository) ListProducts(ctx context.Context, filter ListFilter, sortKey SortKey, limit, offset int) ([]domain.ProductSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := f.filtered(filter)
	sort.Slice(rows, func(i, j int) bool {
		if sortKey == SortPriceDesc {
			return rows[i].Price > rows[j].Price
		}
		return rows[i].Price < rows[j].Price
	})

	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}

	summaries := make([]domain.ProductSummary, 0, len(rows))
	for _, p := range rows {
		summaries = append(summaries, f.summarize(p))
	}
	return summaries, nil
}

func (f *fakeRepository) summarize(p domain.Product) domain.ProductSummary {
	return domain.ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Description:  p.Description,
		CategoryName: f.categories[p.CategoryID].Name,
		ImageURL:     p.ImageURL,
	}
}

func (f *fakeRepository) CountProducts(ctx context.Context, filter ListFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filtered(filter)), nil
}

func (f *fakeRepository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeRepository) GetProductSummary(ctx context.Context, id int64) (domain.ProductSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return domain.ProductSummary{}, sql.ErrNoRows
	}
	return f.summarize(p), nil
}

func (f *fakeRepository) CreateProduct(ctx context.Context, p domain.Product) (int64, error) {
	if f.failCreate {
		return 0, errors.New("store unavailable")
	}
	return f.seed(p), nil
}

func (f *fakeRepository) UpdateProduct(ctx context.Context, p domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.vanishOnUpdate {
		delete(f.products, p.ID)
		return ErrProductVanished
	}
	if _, ok := f.products[p.ID]; !ok {
		return ErrProductVanished
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepository) DeleteProduct(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	return nil
}

func (f *fakeRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepository) GetCategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return domain.Category{}, sql.ErrNoRows
	}
	return c, nil
}

// flakyAssetStore wraps the memory store with switchable failures and
// records every written file name.
type flakyAssetStore struct {
	*assets.MemoryStore

	failDelete bool
	failWrite  bool
	writes     []string
}

func newFlakyAssetStore() *flakyAssetStore {
	return &flakyAssetStore{MemoryStore: assets.NewMemoryStore()}
}

func (s *flakyAssetStore) Write(namespace, fileName string, data []byte) (string, error) {
	if s.failWrite {
		return "", errors.New("disk full")
	}
	s.writes = append(s.writes, fileName)
	return s.MemoryStore.Write(namespace, fileName, data)
}

func (s *flakyAssetStore) Delete(namespace, fileName string) error {
	if s.failDelete {
		return errors.New("permission denied")
	}
	return s.MemoryStore.Delete(namespace, fileName)
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu        sync.Mutex
	published []*events.Event
}

func (r *recordingPublisher) Publish(ctx context.Context, exchange string, event *events.Event, headers events.Headers) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, event)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func (r *recordingPublisher) byName(name events.Name) []*events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*events.Event{}
	for _, e := range r.published {
		if e.Event == name {
			out = append(out, e)
		}
	}
	return out
}

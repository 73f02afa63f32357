package app_test

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"homenest/internal/domain"
)

// ---- fakes ----

type fakeProps struct {
	byID   map[int64]domain.Property
	nextID int64
}

func newFakeProps() *fakeProps {
	return &fakeProps{byID: map[int64]domain.Property{}}
}

func (f *fakeProps) Insert(ctx context.Context, p domain.Property) (int64, error) {
	f.nextID++
	p.ID = f.nextID
	f.byID[p.ID] = p
	return p.ID, nil
}

func (f *fakeProps) Update(ctx context.Context, id int64, u domain.PropertyUpdate) (int64, error) {
	p, ok := f.byID[id]
	if !ok {
		return 0, nil
	}
	now := time.Now().UTC()
	p.Name, p.Price, p.Image = u.Name, u.Price, u.Image
	p.Description, p.Category, p.Location = u.Description, u.Category, u.Location
	p.UpdatedAt = &now
	f.byID[id] = p
	return 1, nil
}

func (f *fakeProps) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := f.byID[id]; !ok {
		return 0, nil
	}
	delete(f.byID, id)
	return 1, nil
}

func (f *fakeProps) Get(ctx context.Context, id int64) (domain.Property, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProps) List(ctx context.Context) ([]domain.Property, error) {
	out := make([]domain.Property, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProps) ListFeatured(ctx context.Context, limit int) ([]domain.Property, error) {
	out, _ := f.List(ctx)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProps) ListByVendor(ctx context.Context, email string) ([]domain.Property, error) {
	all, _ := f.List(ctx)
	out := make([]domain.Property, 0)
	for _, p := range all {
		if p.VendorEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeReviews struct {
	byID    map[int64]domain.Review
	nextID  int64
	stale   []domain.Property
	orphans int64
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{byID: map[int64]domain.Review{}}
}

func (f *fakeReviews) Insert(ctx context.Context, rv domain.Review) (int64, error) {
	f.nextID++
	rv.ID = f.nextID
	f.byID[rv.ID] = rv
	return rv.ID, nil
}

func (f *fakeReviews) list(keep func(domain.Review) bool) []domain.Review {
	out := make([]domain.Review, 0)
	for _, rv := range f.byID {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeReviews) ListByReviewer(ctx context.Context, email string) ([]domain.Review, error) {
	return f.list(func(rv domain.Review) bool { return rv.ReviewerEmail == email }), nil
}

func (f *fakeReviews) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Review, error) {
	return f.list(func(rv domain.Review) bool { return rv.PropertyID == propertyID }), nil
}

func (f *fakeReviews) SyncDenormalized(ctx context.Context, propertyID int64, name, thumbnail string) (int64, error) {
	var n int64
	now := time.Now().UTC()
	for id, rv := range f.byID {
		if rv.PropertyID == propertyID {
			rv.PropertyName, rv.Thumbnail, rv.UpdatedAt = name, thumbnail, &now
			f.byID[id] = rv
			n++
		}
	}
	return n, nil
}

func (f *fakeReviews) DeleteByProperty(ctx context.Context, propertyID int64) (int64, error) {
	var n int64
	for id, rv := range f.byID {
		if rv.PropertyID == propertyID {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeReviews) ListStaleProperties(ctx context.Context, limit int) ([]domain.Property, error) {
	if len(f.stale) > limit {
		return f.stale[:limit], nil
	}
	return f.stale, nil
}

func (f *fakeReviews) DeleteOrphans(ctx context.Context) (int64, error) {
	return f.orphans, nil
}

// fakeCache stores marshaled values so Get behaves like the redis
// adapter (unmarshal into dst).
type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

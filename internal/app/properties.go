package app

import (
	"context"
	"fmt"
	"time"

	"homenest/internal/domain"
)

// FeaturedLimit caps the featured listing at the newest six records.
const FeaturedLimit = 6

const featuredKey = "properties:featured"

func reviewsKey(propertyID int64) string {
	return fmt.Sprintf("reviews:property:%d", propertyID)
}

// PropertyService owns the property lifecycle, including the
// best-effort cascades into the reviews collection. The property and
// review statements are independent: a failure between them leaves
// visible inconsistency that cmd/reconciler repairs later.
type PropertyService struct {
	props    domain.PropertyRepository
	reviews  domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewPropertyService(p domain.PropertyRepository, r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *PropertyService {
	return &PropertyService{props: p, reviews: r, cache: c, cacheTTL: ttl, now: time.Now}
}

// Create stamps the server-side creation timestamp and inserts.
// No field validation beyond what the request decoder already did.
func (s *PropertyService) Create(ctx context.Context, p domain.Property) (int64, error) {
	p.CreatedAt = s.now().UTC()
	p.UpdatedAt = nil
	id, err := s.props.Insert(ctx, p)
	if err != nil {
		return 0, err
	}
	_ = s.cache.Del(ctx, featuredKey)
	return id, nil
}

func (s *PropertyService) List(ctx context.Context) ([]domain.Property, error) {
	return s.props.List(ctx)
}

func (s *PropertyService) Featured(ctx context.Context) ([]domain.Property, error) {
	var out []domain.Property
	if ok, _ := s.cache.Get(ctx, featuredKey, &out); ok {
		return out, nil
	}
	out, err := s.props.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, featuredKey, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *PropertyService) Get(ctx context.Context, id int64) (domain.Property, error) {
	return s.props.Get(ctx, id)
}

func (s *PropertyService) ListByVendor(ctx context.Context, email string) ([]domain.Property, error) {
	return s.props.ListByVendor(ctx, email)
}

// Update applies the mutable fields after the ownership check, then
// rewrites the denormalized name/thumbnail on every referencing review.
func (s *PropertyService) Update(ctx context.Context, id int64, caller string, u domain.PropertyUpdate) (domain.UpdateResult, error) {
	p, err := s.props.Get(ctx, id)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	if p.VendorEmail != caller {
		return domain.UpdateResult{}, domain.ErrForbidden
	}

	var res domain.UpdateResult
	res.PropertiesModified, err = s.props.Update(ctx, id, u)
	if err != nil {
		return res, err
	}
	// Cascade leg. Property row is already updated at this point; on
	// failure the caller gets a 500 and the reviews stay stale until
	// the reconciler catches them.
	res.ReviewsModified, err = s.reviews.SyncDenormalized(ctx, id, u.Name, u.Image)
	if err != nil {
		return res, err
	}

	_ = s.cache.Del(ctx, featuredKey)
	_ = s.cache.Del(ctx, reviewsKey(id))
	return res, nil
}

// Delete removes the property, then its reviews. Owner-only, matching
// the update path.
func (s *PropertyService) Delete(ctx context.Context, id int64, caller string) (domain.DeleteResult, error) {
	p, err := s.props.Get(ctx, id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	if p.VendorEmail != caller {
		return domain.DeleteResult{}, domain.ErrForbidden
	}

	var res domain.DeleteResult
	res.PropertiesDeleted, err = s.props.Delete(ctx, id)
	if err != nil {
		return res, err
	}
	res.ReviewsDeleted, err = s.reviews.DeleteByProperty(ctx, id)
	if err != nil {
		return res, err
	}

	_ = s.cache.Del(ctx, featuredKey)
	_ = s.cache.Del(ctx, reviewsKey(id))
	return res, nil
}

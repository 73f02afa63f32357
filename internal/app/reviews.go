package app

import (
	"context"
	"errors"
	"time"

	"homenest/internal/domain"
)

type ReviewService struct {
	reviews  domain.ReviewRepository
	props    domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewReviewService(r domain.ReviewRepository, p domain.PropertyRepository, c domain.Cache, ttl time.Duration) *ReviewService {
	return &ReviewService{reviews: r, props: p, cache: c, cacheTTL: ttl, now: time.Now}
}

// Create stamps the creation timestamp and copies the property's
// current name/image into the denormalized fields. A dangling property
// reference is allowed (no existence check on the reference), in which
// case whatever the payload carried is kept.
func (s *ReviewService) Create(ctx context.Context, rv domain.Review) (int64, error) {
	rv.CreatedAt = s.now().UTC()
	rv.UpdatedAt = nil

	if p, err := s.props.Get(ctx, rv.PropertyID); err == nil {
		rv.PropertyName = p.Name
		rv.Thumbnail = p.Image
	} else if !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}

	id, err := s.reviews.Insert(ctx, rv)
	if err != nil {
		return 0, err
	}
	_ = s.cache.Del(ctx, reviewsKey(rv.PropertyID))
	return id, nil
}

func (s *ReviewService) ListByReviewer(ctx context.Context, email string) ([]domain.Review, error) {
	return s.reviews.ListByReviewer(ctx, email)
}

func (s *ReviewService) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Review, error) {
	key := reviewsKey(propertyID)
	var out []domain.Review
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := s.reviews.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

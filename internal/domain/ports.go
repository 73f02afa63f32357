package domain

import "context"

type PropertyRepository interface {
	// Write paths
	Insert(ctx context.Context, p Property) (int64, error)
	Update(ctx context.Context, id int64, u PropertyUpdate) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)

	// Read paths
	Get(ctx context.Context, id int64) (Property, error)
	List(ctx context.Context) ([]Property, error)
	ListFeatured(ctx context.Context, limit int) ([]Property, error)
	ListByVendor(ctx context.Context, email string) ([]Property, error)
}

type ReviewRepository interface {
	Insert(ctx context.Context, r Review) (int64, error)
	ListByReviewer(ctx context.Context, email string) ([]Review, error)
	ListByProperty(ctx context.Context, propertyID int64) ([]Review, error)

	// SyncDenormalized rewrites the copied property name/thumbnail on
	// every review referencing propertyID; returns rows touched.
	SyncDenormalized(ctx context.Context, propertyID int64, name, thumbnail string) (int64, error)

	// DeleteByProperty removes all reviews referencing propertyID.
	DeleteByProperty(ctx context.Context, propertyID int64) (int64, error)

	// Reconciliation reads (see cmd/reconciler).
	ListStaleProperties(ctx context.Context, limit int) ([]Property, error)
	DeleteOrphans(ctx context.Context) (int64, error)
}

// TokenVerifier checks a raw bearer credential against the identity
// provider and yields the verified identity claim.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Identity is the claim set attached to authenticated requests.
type Identity struct {
	Email string
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

package usecase

import (
	"context"
	"time"
)

const (
	skillsCatalogCacheKey         = "catalog:skills"
	certificationsCatalogCacheKey = "catalog:certifications"
)

// CatalogCache is the read-through cache used by the catalog listings.
// Implementations are expected to degrade to no-ops when unavailable.
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

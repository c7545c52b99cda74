package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogClient defines the interface for fetching pages of catalog results.
// FetchPages walks page offsets strictly sequentially and returns the
// concatenated raw items plus the total reported by the last fetched page.
type CatalogClient interface {
	FetchPages(ctx context.Context, query string, pages int, sortHint string, exclude []string) ([]RawCatalogItem, int, error)
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ckdqja135/salermoon/internal/domain"
	"github.com/ckdqja135/salermoon/internal/infrastructure/naver"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL time.Duration
	MaxPages int
}

// SearchService drives the catalog client, normalizer and filter engine
// through the progressive relaxation rounds and assembles the final result.
type SearchService struct {
	catalog  domain.CatalogClient
	filter   *FilterEngine
	cache    domain.CacheRepository
	cacheTTL time.Duration
	maxPages int
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(
	catalog domain.CatalogClient,
	cache domain.CacheRepository,
	config SearchServiceConfig,
) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	maxPages := config.MaxPages
	if maxPages <= 0 {
		maxPages = 10
	}

	return &SearchService{
		catalog:  catalog,
		filter:   NewFilterEngine(FilterConfig{}),
		cache:    cache,
		cacheTTL: cacheTTL,
		maxPages: maxPages,
	}
}

// Search runs one full search: fetch, normalize, filter, and up to three
// relaxation rounds when strict filtering yields nothing.
//
// Relaxation fires strictly in the order dropFilterNoise, dropExclude,
// reducePages, each round entered only while the result is still empty and
// its own precondition holds. minPrice/maxPrice pass through every round
// unchanged; they encode explicit user intent and are never widened. An
// empty result after all rounds is a valid outcome, not an error.
func (s *SearchService) Search(ctx context.Context, query string, filters domain.SearchFilters) (*domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	filters = s.normalizeFilters(filters)

	cacheKey := searchCacheKey(query, filters)
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		log.Printf("[SEARCH] Cache hit for %q", query)
		return cached, nil
	}

	// Round 0: original constraints.
	raw, total, err := s.catalog.FetchPages(ctx, query, filters.Pages, filters.Sort, filters.Exclude)
	if err != nil {
		return nil, err
	}
	items := naver.NormalizeItems(raw)

	filtered, diag := s.filter.Apply(items, filters.MinPrice, filters.MaxPrice, filters.Exclude, filters.FilterNoise)

	relaxLog := []domain.RelaxationStep{}
	enforced := domain.AppliedFilters{
		MinPrice:    filters.MinPrice,
		MaxPrice:    filters.MaxPrice,
		Exclude:     filters.Exclude,
		FilterNoise: filters.FilterNoise,
		Pages:       filters.Pages,
		Sort:        filters.Sort,
	}

	// Round 1: drop the noise filter. The fetched pages are unaffected by
	// this constraint, so re-filtering the same items is enough.
	if len(filtered) == 0 && filters.FilterNoise {
		enforced.FilterNoise = false
		filtered, diag = s.filter.Apply(items, filters.MinPrice, filters.MaxPrice, enforced.Exclude, false)
		relaxLog = append(relaxLog, domain.RelaxDropFilterNoise)
		log.Printf("[SEARCH] %q: relaxed filterNoise, %d items", query, len(filtered))
	}

	// Round 2: drop the exclusion categories. The upstream exclude parameter
	// changes, so this requires a re-fetch.
	if len(filtered) == 0 && len(filters.Exclude) > 0 {
		enforced.Exclude = nil
		raw, total, err = s.catalog.FetchPages(ctx, query, enforced.Pages, filters.Sort, nil)
		if err != nil {
			return nil, err
		}
		items = naver.NormalizeItems(raw)
		filtered, diag = s.filter.Apply(items, filters.MinPrice, filters.MaxPrice, nil, enforced.FilterNoise)
		relaxLog = append(relaxLog, domain.RelaxDropExclude)
		log.Printf("[SEARCH] %q: relaxed exclude, %d items", query, len(filtered))
	}

	// Round 3: reduce to a single page under the constraints as relaxed so
	// far. Terminal either way.
	if len(filtered) == 0 && filters.Pages > 1 {
		enforced.Pages = 1
		raw, total, err = s.catalog.FetchPages(ctx, query, 1, filters.Sort, enforced.Exclude)
		if err != nil {
			return nil, err
		}
		items = naver.NormalizeItems(raw)
		filtered, diag = s.filter.Apply(items, filters.MinPrice, filters.MaxPrice, enforced.Exclude, enforced.FilterNoise)
		relaxLog = append(relaxLog, domain.RelaxReducePages)
		log.Printf("[SEARCH] %q: reduced pages, %d items", query, len(filtered))
	}

	top1, groups, summary := Aggregate(filtered)

	result := &domain.SearchResult{
		Items:             filtered,
		Top1:              top1,
		PriceGroups:       groups,
		Summary:           summary,
		TotalCandidates:   len(filtered),
		TotalReported:     total,
		Relaxed:           len(relaxLog) > 0,
		RelaxationLog:     relaxLog,
		Applied:           enforced,
		ExcludedByKeyword: diag,
	}

	s.setInCache(ctx, cacheKey, result)

	return result, nil
}

// normalizeFilters swaps inverted price bounds, bounds the page count, and
// drops exclusion categories outside the known vocabulary.
func (s *SearchService) normalizeFilters(filters domain.SearchFilters) domain.SearchFilters {
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		filters.MinPrice, filters.MaxPrice = filters.MaxPrice, filters.MinPrice
	}

	if filters.Pages < 1 {
		filters.Pages = 1
	}
	if filters.Pages > s.maxPages {
		filters.Pages = s.maxPages
	}

	if len(filters.Exclude) > 0 {
		known := make([]string, 0, len(filters.Exclude))
		for _, cat := range filters.Exclude {
			if s.filter.KnownCategory(cat) {
				known = append(known, cat)
			}
		}
		filters.Exclude = known
	}

	return filters
}

// searchCacheKey builds a cache key covering every constraint that changes
// the outcome.
func searchCacheKey(query string, f domain.SearchFilters) string {
	min, max := -1, -1
	if f.MinPrice != nil {
		min = *f.MinPrice
	}
	if f.MaxPrice != nil {
		max = *f.MaxPrice
	}
	return fmt.Sprintf("search:%s:%d:%d:%s:%t:%d:%s",
		strings.ToLower(query), min, max, strings.Join(f.Exclude, ","), f.FilterNoise, f.Pages, f.Sort)
}

// getFromCache retrieves a cached search result. Cached entries are stored
// as JSON text so a hit deserializes into a fresh value.
func (s *SearchService) getFromCache(ctx context.Context, key string) *domain.SearchResult {
	if s.cache == nil {
		return nil
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	encoded, ok := value.(string)
	if !ok {
		return nil
	}
	var result domain.SearchResult
	if err := json.Unmarshal([]byte(encoded), &result); err != nil {
		return nil
	}
	return &result
}

// setInCache stores a search result. Cache failures are logged, never fatal.
func (s *SearchService) setInCache(ctx context.Context, key string, result *domain.SearchResult) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
		log.Printf("[SEARCH] Failed to cache result: %v", err)
	}
}

package usecase

import (
	"sort"
	"strings"

	"github.com/ckdqja135/salermoon/internal/domain"
)

// excludeVocabulary maps each upstream exclusion category to the title
// keywords that betray it. The upstream exclude parameter is known to let
// such listings through, so title matching is a required second line of
// defense, not cosmetics.
var excludeVocabulary = map[string][]string{
	// 중고/리퍼/반품/전시 판매글
	"used": {"중고", "리퍼", "리퍼비시", "반품", "전시상품", "전시품", "개봉"},
	// 렌탈/약정 판매글
	"rental": {"렌탈", "렌트", "임대", "월렌탈", "약정"},
	// 해외직구/병행수입 판매글
	"cbshop": {"해외직구", "직구", "병행수입", "관부가세", "배송대행"},
}

// noiseKeywords flag listings that are not purchasable product instances,
// such as quote requests and bulk-order inquiry posts.
var noiseKeywords = []string{
	"견적", "견적서", "문의", "상담", "대량구매", "사은품", "증정",
}

// FilterConfig holds the keyword tables for the filter engine. Zero values
// select the built-in vocabulary.
type FilterConfig struct {
	ExcludeVocabulary map[string][]string
	NoiseKeywords     []string
}

// FilterEngine applies the ordered filter chain over normalized items:
// price bounds, then category-exclusion keywords, then noise keywords.
type FilterEngine struct {
	vocabulary  map[string][]string
	allKeywords []string
	noise       []string
}

// NewFilterEngine creates a filter engine with the given keyword tables.
func NewFilterEngine(config FilterConfig) *FilterEngine {
	vocab := config.ExcludeVocabulary
	if vocab == nil {
		vocab = excludeVocabulary
	}
	noise := config.NoiseKeywords
	if noise == nil {
		noise = noiseKeywords
	}

	var all []string
	for _, keywords := range vocab {
		all = append(all, keywords...)
	}

	return &FilterEngine{vocabulary: vocab, allKeywords: all, noise: noise}
}

// KnownCategory reports whether name is part of the exclusion vocabulary.
func (f *FilterEngine) KnownCategory(name string) bool {
	_, ok := f.vocabulary[name]
	return ok
}

// Apply filters items in a fixed, non-commutative order, deduplicates by
// link keeping the first occurrence, and stable-sorts ascending by lprice
// so that ties preserve arrival order.
//
// The second return value is a diagnostic: among items passing the price
// bounds, how many match the exclusion vocabulary — counted against the full
// vocabulary whether or not exclusion is configured. It feeds observability
// only, never decisions.
func (f *FilterEngine) Apply(items []domain.Item, minPrice, maxPrice *int, exclude []string, filterNoise bool) ([]domain.Item, int) {
	kept := make([]domain.Item, 0, len(items))
	excludedByKeyword := 0

	for _, item := range items {
		if !passesPriceBounds(item, minPrice, maxPrice) {
			continue
		}
		title := strings.ToLower(item.TitleText)
		if containsAny(title, f.allKeywords) {
			excludedByKeyword++
		}
		if len(exclude) > 0 && f.matchesCategories(title, exclude) {
			continue
		}
		if filterNoise && containsAny(title, f.noise) {
			continue
		}
		kept = append(kept, item)
	}

	kept = dedupeByLink(kept)

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].LPrice < kept[j].LPrice
	})

	return kept, excludedByKeyword
}

// passesPriceBounds excludes unknown prices (lprice == 0) from any
// price-bounded result, then applies the optional bounds.
func passesPriceBounds(item domain.Item, minPrice, maxPrice *int) bool {
	if item.LPrice <= 0 {
		return false
	}
	if minPrice != nil && item.LPrice < *minPrice {
		return false
	}
	if maxPrice != nil && item.LPrice > *maxPrice {
		return false
	}
	return true
}

// matchesCategories reports whether the lowercased title contains any keyword
// mapped to any of the named categories. Unknown category names match nothing.
func (f *FilterEngine) matchesCategories(lowerTitle string, categories []string) bool {
	for _, cat := range categories {
		if containsAny(lowerTitle, f.vocabulary[cat]) {
			return true
		}
	}
	return false
}

func containsAny(lowerTitle string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerTitle, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// dedupeByLink keeps the first occurrence per link, preserving upstream
// ranking among duplicates. Items without a link are never collapsed.
func dedupeByLink(items []domain.Item) []domain.Item {
	seen := make(map[string]bool, len(items))
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.Link != "" {
			if seen[item.Link] {
				continue
			}
			seen[item.Link] = true
		}
		out = append(out, item)
	}
	return out
}

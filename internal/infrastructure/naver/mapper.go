package naver

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ckdqja135/salermoon/internal/domain"
)

// tagRegex strips the minimal emphasis markup the shopping API embeds in
// titles (<b>...</b>). Anything between angle brackets is removed; this is
// deliberately not an HTML parser.
var tagRegex = regexp.MustCompile(`<[^>]*>`)

// NormalizeItem converts one raw catalog record into the internal Item shape.
// It is total: malformed price fields coerce to 0, absent optional fields
// stay empty strings.
func NormalizeItem(raw domain.RawCatalogItem) domain.Item {
	return domain.Item{
		Title:     raw.Title,
		TitleText: StripTags(raw.Title),
		LPrice:    parsePrice(raw.LPrice),
		HPrice:    parsePrice(raw.HPrice),
		MallName:  strings.TrimSpace(raw.MallName),
		Link:      strings.TrimSpace(raw.Link),
		Image:     strings.TrimSpace(raw.Image),
		ProductID: strings.TrimSpace(raw.ProductID),
		Brand:     strings.TrimSpace(raw.Brand),
		Maker:     strings.TrimSpace(raw.Maker),
		Category1: strings.TrimSpace(raw.Category1),
		Category2: strings.TrimSpace(raw.Category2),
		Category3: strings.TrimSpace(raw.Category3),
		Category4: strings.TrimSpace(raw.Category4),
	}
}

// NormalizeItems maps a fetched page batch in arrival order.
func NormalizeItems(raws []domain.RawCatalogItem) []domain.Item {
	items := make([]domain.Item, 0, len(raws))
	for _, raw := range raws {
		items = append(items, NormalizeItem(raw))
	}
	return items
}

// StripTags removes angle-bracket markup and collapses surrounding whitespace.
func StripTags(s string) string {
	return strings.TrimSpace(tagRegex.ReplaceAllString(s, ""))
}

// parsePrice leniently coerces an upstream price string to a non-negative
// integer. Non-numeric, missing, or negative input yields 0, never an error.
func parsePrice(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

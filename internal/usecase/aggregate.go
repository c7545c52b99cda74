package usecase

import (
	"math"
	"sort"

	"github.com/ckdqja135/salermoon/internal/domain"
)

const (
	// maxGroupItems caps how many items one price band retains.
	maxGroupItems = 20

	// maxPriceGroups caps how many ascending bands are returned.
	maxPriceGroups = 10
)

// Aggregate derives the ranked output from a filtered item list: the single
// cheapest item, exact-price bands in ascending order, and weighted summary
// statistics over those bands only.
//
// Groups are built fresh on every call; the input is never mutated.
func Aggregate(items []domain.Item) (*domain.Item, []domain.PriceGroup, *domain.PriceBandSummary) {
	if len(items) == 0 {
		return nil, nil, nil
	}

	top1 := cheapestItem(items)
	groups := buildPriceGroups(items)
	summary := summarizeGroups(groups)

	return top1, groups, summary
}

// cheapestItem returns the lowest-priced item, first occurrence winning on
// ties. For a price-ascending input this is simply the first item.
func cheapestItem(items []domain.Item) *domain.Item {
	best := items[0]
	for _, item := range items[1:] {
		if item.LPrice < best.LPrice {
			best = item
		}
	}
	return &best
}

// buildPriceGroups buckets items by exact price preserving arrival order
// within each bucket, then emits an explicitly price-sorted sequence capped
// at maxPriceGroups bands of maxGroupItems items each. The explicit sort
// avoids leaning on map iteration order.
func buildPriceGroups(items []domain.Item) []domain.PriceGroup {
	buckets := make(map[int][]domain.Item)
	for _, item := range items {
		if len(buckets[item.LPrice]) < maxGroupItems {
			buckets[item.LPrice] = append(buckets[item.LPrice], item)
		}
	}

	prices := make([]int, 0, len(buckets))
	for price := range buckets {
		prices = append(prices, price)
	}
	sort.Ints(prices)

	if len(prices) > maxPriceGroups {
		prices = prices[:maxPriceGroups]
	}

	groups := make([]domain.PriceGroup, 0, len(prices))
	for _, price := range prices {
		bucket := buckets[price]
		rep := bucket[0]
		groups = append(groups, domain.PriceGroup{
			Price:          price,
			Count:          len(bucket),
			Items:          bucket,
			Representative: &rep,
		})
	}
	return groups
}

// summarizeGroups computes the price extremes, item-count-weighted mean, and
// weighted median over the returned bands. The median expands each band into
// count repeated price entries and takes the middle (or the mean of the two
// central entries for an even total) — the median of the top-N banded items,
// not of the full result set.
func summarizeGroups(groups []domain.PriceGroup) *domain.PriceBandSummary {
	if len(groups) == 0 {
		return nil
	}

	totalCount := 0
	weightedSum := 0
	var expanded []int
	for _, g := range groups {
		totalCount += g.Count
		weightedSum += g.Price * g.Count
		for i := 0; i < g.Count; i++ {
			expanded = append(expanded, g.Price)
		}
	}

	sort.Ints(expanded)

	var median int
	mid := len(expanded) / 2
	if len(expanded)%2 == 1 {
		median = expanded[mid]
	} else {
		median = int(math.Round(float64(expanded[mid-1]+expanded[mid]) / 2))
	}

	return &domain.PriceBandSummary{
		MinPrice:    groups[0].Price,
		MaxPrice:    groups[len(groups)-1].Price,
		AvgPrice:    int(math.Round(float64(weightedSum) / float64(totalCount))),
		MedianPrice: median,
	}
}

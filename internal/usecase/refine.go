package usecase

import (
	"math"
	"sort"

	"github.com/ckdqja135/salermoon/internal/domain"
)

const (
	// iqrMultiplier is wider than the conventional 1.5; product prices are
	// heavily right-skewed and a tight fence trims legitimate listings.
	iqrMultiplier = 3.0

	// iqrMinSamples is the smallest set for which quartiles mean anything.
	iqrMinSamples = 5
)

// RefineOptions selects the client-side refinement steps to apply.
type RefineOptions struct {
	TrimOutliers bool     `json:"trimOutliers"`
	Malls        []string `json:"malls"`
	Sort         string   `json:"sort"` // "asc", "desc", anything else keeps arrival order
}

// Refine reapplies statistical operations over an already-fetched item list
// without contacting the catalog again. It is pure and repeatable: the input
// slice is never mutated, and the bands and summary are always recomputed
// from the refined subset rather than reused from the original search.
func Refine(items []domain.Item, opts RefineOptions) *domain.RefineResult {
	refined := make([]domain.Item, len(items))
	copy(refined, items)

	if opts.TrimOutliers {
		refined = trimOutliers(refined)
	}

	if len(opts.Malls) > 0 {
		refined = filterByMall(refined, opts.Malls)
	}

	switch opts.Sort {
	case "asc":
		sort.SliceStable(refined, func(i, j int) bool { return refined[i].LPrice < refined[j].LPrice })
	case "desc":
		sort.SliceStable(refined, func(i, j int) bool { return refined[i].LPrice > refined[j].LPrice })
	}

	top1, groups, summary := Aggregate(refined)

	return &domain.RefineResult{
		Items:           refined,
		Top1:            top1,
		PriceGroups:     groups,
		Summary:         summary,
		TotalCandidates: len(refined),
	}
}

// trimOutliers drops items outside the interquartile fence
// [max(0, Q1 - k*IQR), Q3 + k*IQR]. Quartiles are index-based with no
// interpolation. Below iqrMinSamples every item passes: too few points make
// the IQR meaningless.
func trimOutliers(items []domain.Item) []domain.Item {
	if len(items) < iqrMinSamples {
		return items
	}

	prices := make([]int, len(items))
	for i, item := range items {
		prices[i] = item.LPrice
	}
	sort.Ints(prices)

	q1 := float64(prices[len(prices)/4])
	q3 := float64(prices[3*len(prices)/4])
	iqr := q3 - q1

	lower := math.Max(0, q1-iqrMultiplier*iqr)
	upper := q3 + iqrMultiplier*iqr

	kept := make([]domain.Item, 0, len(items))
	for _, item := range items {
		price := float64(item.LPrice)
		if price < lower || price > upper {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// filterByMall retains items whose mall is in the selected subset.
func filterByMall(items []domain.Item, malls []string) []domain.Item {
	selected := make(map[string]bool, len(malls))
	for _, mall := range malls {
		selected[mall] = true
	}

	kept := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if selected[item.MallName] {
			kept = append(kept, item)
		}
	}
	return kept
}

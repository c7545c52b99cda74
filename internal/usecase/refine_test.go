package usecase

import (
	"testing"

	"github.com/ckdqja135/salermoon/internal/domain"
)

func mallItem(link string, price int, mall string) domain.Item {
	return domain.Item{Link: link, LPrice: price, MallName: mall}
}

func TestRefine_NoOptionsIsPassthrough(t *testing.T) {
	items := []domain.Item{
		mallItem("a", 3000, "몰A"),
		mallItem("b", 1000, "몰B"),
	}

	result := Refine(items, RefineOptions{})

	if len(result.Items) != 2 {
		t.Fatalf("len = %d, want 2", len(result.Items))
	}
	// Non-price sort mode: arrival order preserved.
	if result.Items[0].Link != "a" || result.Items[1].Link != "b" {
		t.Errorf("order changed without a sort mode: %v", links(result.Items))
	}
	if result.Top1 == nil || result.Top1.Link != "b" {
		t.Errorf("Top1 = %v, want cheapest item b", result.Top1)
	}
	if result.TotalCandidates != 2 {
		t.Errorf("TotalCandidates = %d, want 2", result.TotalCandidates)
	}
}

func TestRefine_OutlierTrim(t *testing.T) {
	t.Run("below minimum sample size returns input unchanged", func(t *testing.T) {
		items := []domain.Item{
			mallItem("a", 100, ""),
			mallItem("b", 1000000, ""),
			mallItem("c", 200, ""),
			mallItem("d", 300, ""),
		}
		result := Refine(items, RefineOptions{TrimOutliers: true})
		if len(result.Items) != 4 {
			t.Errorf("len = %d, want 4 (IQR meaningless under %d samples)", len(result.Items), iqrMinSamples)
		}
	})

	t.Run("extreme outlier dropped", func(t *testing.T) {
		items := []domain.Item{
			mallItem("a", 10000, ""),
			mallItem("b", 10500, ""),
			mallItem("c", 11000, ""),
			mallItem("d", 11500, ""),
			mallItem("e", 12000, ""),
			mallItem("f", 900000, ""),
		}
		result := Refine(items, RefineOptions{TrimOutliers: true})
		for _, it := range result.Items {
			if it.Link == "f" {
				t.Errorf("outlier f survived the trim")
			}
		}
		if len(result.Items) != 5 {
			t.Errorf("len = %d, want 5", len(result.Items))
		}
	})

	t.Run("uniform prices keep everything", func(t *testing.T) {
		items := priced(9900, 8)
		result := Refine(items, RefineOptions{TrimOutliers: true})
		if len(result.Items) != 8 {
			t.Errorf("len = %d, want 8", len(result.Items))
		}
	})
}

func TestRefine_MallFacet(t *testing.T) {
	items := []domain.Item{
		mallItem("a", 1000, "몰A"),
		mallItem("b", 2000, "몰B"),
		mallItem("c", 3000, "몰A"),
	}

	t.Run("subset retained", func(t *testing.T) {
		result := Refine(items, RefineOptions{Malls: []string{"몰A"}})
		if len(result.Items) != 2 {
			t.Fatalf("len = %d, want 2", len(result.Items))
		}
		for _, it := range result.Items {
			if it.MallName != "몰A" {
				t.Errorf("item %q from mall %q survived the facet", it.Link, it.MallName)
			}
		}
	})

	t.Run("empty subset filters nothing", func(t *testing.T) {
		result := Refine(items, RefineOptions{Malls: nil})
		if len(result.Items) != 3 {
			t.Errorf("len = %d, want 3", len(result.Items))
		}
	})
}

func TestRefine_Sort(t *testing.T) {
	items := []domain.Item{
		mallItem("a", 3000, ""),
		mallItem("b", 1000, ""),
		mallItem("c", 2000, ""),
	}

	t.Run("ascending", func(t *testing.T) {
		result := Refine(items, RefineOptions{Sort: "asc"})
		want := []string{"b", "c", "a"}
		for i, w := range want {
			if result.Items[i].Link != w {
				t.Fatalf("order = %v, want %v", links(result.Items), want)
			}
		}
	})

	t.Run("descending", func(t *testing.T) {
		result := Refine(items, RefineOptions{Sort: "desc"})
		want := []string{"a", "c", "b"}
		for i, w := range want {
			if result.Items[i].Link != w {
				t.Fatalf("order = %v, want %v", links(result.Items), want)
			}
		}
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		Refine(items, RefineOptions{Sort: "asc"})
		if items[0].Link != "a" {
			t.Errorf("input mutated: %v", links(items))
		}
	})
}

func TestRefine_RecomputesAggregates(t *testing.T) {
	items := []domain.Item{
		mallItem("a", 1000, "몰A"),
		mallItem("b", 1000, "몰B"),
		mallItem("c", 5000, "몰B"),
	}

	result := Refine(items, RefineOptions{Malls: []string{"몰B"}})

	if result.Top1 == nil || result.Top1.Link != "b" {
		t.Errorf("Top1 = %v, want b", result.Top1)
	}
	if len(result.PriceGroups) != 2 {
		t.Fatalf("groups = %d, want 2 (recomputed over refined subset)", len(result.PriceGroups))
	}
	// Bands derive from the 2 refined items only, never from the original 3.
	if result.Summary.AvgPrice != 3000 {
		t.Errorf("AvgPrice = %d, want 3000", result.Summary.AvgPrice)
	}
}

func TestRefine_RepeatedInvocationsAreIndependent(t *testing.T) {
	items := []domain.Item{
		mallItem("a", 1000, "몰A"),
		mallItem("b", 2000, "몰B"),
	}

	first := Refine(items, RefineOptions{Malls: []string{"몰A"}})
	second := Refine(items, RefineOptions{Malls: []string{"몰B"}})

	if len(first.Items) != 1 || first.Items[0].Link != "a" {
		t.Errorf("first refinement polluted: %v", links(first.Items))
	}
	if len(second.Items) != 1 || second.Items[0].Link != "b" {
		t.Errorf("second refinement polluted: %v", links(second.Items))
	}
}

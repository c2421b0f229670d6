package quote

import "sort"

// MergeSources joins the per-catalog results with the current catalog
// taking precedence: a legacy proposal is dropped when the current catalog
// already produced a proposal for the same carrier, whatever its savings.
func MergeSources(current, legacy []Proposal) []Proposal {
	seen := make(map[string]bool, len(current))
	for _, p := range current {
		seen[p.CarrierID] = true
	}

	merged := make([]Proposal, 0, len(current)+len(legacy))
	merged = append(merged, current...)
	for _, p := range legacy {
		if seen[p.CarrierID] {
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

// Rank orders by savings percentage (highest first, ties keep input
// order), keeps the best proposal per carrier and stops at limit.
func Rank(proposals []Proposal, limit int) []Proposal {
	sorted := make([]Proposal, len(proposals))
	copy(sorted, proposals)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SavingsPct.GreaterThan(sorted[j].SavingsPct)
	})

	seen := make(map[string]bool)
	top := make([]Proposal, 0, limit)
	for _, p := range sorted {
		if len(top) >= limit {
			break
		}
		if seen[p.CarrierID] {
			continue
		}
		seen[p.CarrierID] = true
		top = append(top, p)
	}
	return top
}

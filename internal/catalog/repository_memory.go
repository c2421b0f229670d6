package catalog

import (
	"context"
	"sort"
)

// MemoryRepository serves both catalogs from memory. It backs the CLI, the
// R2/file snapshot sources, and tests. Plans are never mutated after load.
type MemoryRepository struct {
	current []CurrentPlan
	legacy  []LegacyPlan
}

func NewMemoryRepository(current []CurrentPlan, legacy []LegacyPlan) *MemoryRepository {
	return &MemoryRepository{current: current, legacy: legacy}
}

func (r *MemoryRepository) CurrentPlans(
	ctx context.Context,
	modality Modality,
) ([]CurrentPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var plans []CurrentPlan
	for _, p := range r.current {
		if p.Active && p.Modality == modality {
			plans = append(plans, p)
		}
	}

	// unnamed carriers last, like NULL operadora_nome under ORDER BY ASC
	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i].CarrierName, plans[j].CarrierName
		if (a == "") != (b == "") {
			return b == ""
		}
		return a < b
	})

	return plans, nil
}

func (r *MemoryRepository) LegacyPlans(
	ctx context.Context,
	contractType string,
) ([]LegacyPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var plans []LegacyPlan
	for _, p := range r.legacy {
		if p.Active && p.ContractType == contractType {
			plans = append(plans, p)
		}
	}

	sort.SliceStable(plans, func(i, j int) bool {
		if plans[i].Order != plans[j].Order {
			return plans[i].Order < plans[j].Order
		}
		return plans[i].ID < plans[j].ID
	})

	return plans, nil
}

// Counts reports how many plans each catalog holds.
func (r *MemoryRepository) Counts() (current, legacy int) {
	return len(r.current), len(r.legacy)
}

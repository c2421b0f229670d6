package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/niltaduartte/humano-saude-sub001/internal/bracket"
)

// Snapshot is the YAML export format of both catalogs. It is what the CLI
// reads from disk and what the API pulls from object storage when no
// database is configured.
type Snapshot struct {
	Current []SnapshotCurrentPlan `yaml:"current"`
	Legacy  []SnapshotLegacyPlan  `yaml:"legacy"`
}

type SnapshotCurrentPlan struct {
	ID                 int64              `yaml:"id"`
	CarrierID          string             `yaml:"carrier_id"`
	CarrierName        string             `yaml:"carrier_name"`
	PlanName           string             `yaml:"plan_name"`
	Modality           string             `yaml:"modality"`
	MinLives           *int               `yaml:"min_lives"`
	MaxLives           *int               `yaml:"max_lives"`
	Coparticipation    bool               `yaml:"coparticipation"`
	CoparticipationPct *float64           `yaml:"coparticipation_pct"`
	CoverageArea       *string            `yaml:"coverage_area"`
	HospitalNetwork    []string           `yaml:"hospital_network"`
	Notes              *string            `yaml:"notes"`
	Active             *bool              `yaml:"active"`
	Prices             map[string]float64 `yaml:"prices"`
}

type SnapshotLegacyPlan struct {
	ID              int64              `yaml:"id"`
	Name            string             `yaml:"name"`
	Carrier         string             `yaml:"carrier"`
	ContractType    string             `yaml:"contract_type"`
	Accommodation   string             `yaml:"accommodation"`
	Coparticipation string             `yaml:"coparticipation"`
	CoverageArea    *string            `yaml:"coverage_area"`
	Refund          *string            `yaml:"refund"`
	Extras          *string            `yaml:"extras"`
	Prices          map[string]float64 `yaml:"prices"`
	Featured        bool               `yaml:"featured"`
	Order           int                `yaml:"order"`
	LogoURL         *string            `yaml:"logo_url"`
	Active          *bool              `yaml:"active"`
}

// LoadSnapshotFile reads a YAML snapshot from disk.
func LoadSnapshotFile(path string) (*MemoryRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	return LoadSnapshot(data)
}

// LoadSnapshot parses a YAML snapshot. Plans without an explicit active
// flag are treated as active.
func LoadSnapshot(data []byte) (*MemoryRepository, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot YAML: %w", err)
	}

	current := make([]CurrentPlan, 0, len(snap.Current))
	for i, sp := range snap.Current {
		if sp.CarrierID == "" {
			return nil, fmt.Errorf("current plan %d (%s): carrier_id is required", i, sp.PlanName)
		}

		plan := CurrentPlan{
			ID:              sp.ID,
			CarrierID:       sp.CarrierID,
			CarrierName:     sp.CarrierName,
			PlanName:        sp.PlanName,
			Modality:        Modality(sp.Modality),
			MinLives:        sp.MinLives,
			MaxLives:        sp.MaxLives,
			Coparticipation: sp.Coparticipation,
			CoverageArea:    sp.CoverageArea,
			HospitalNetwork: sp.HospitalNetwork,
			Notes:           sp.Notes,
			Active:          sp.Active == nil || *sp.Active,
		}
		if sp.CoparticipationPct != nil {
			pct := decimal.NewFromFloat(*sp.CoparticipationPct)
			plan.CoparticipationPct = &pct
		}

		for _, b := range sortedKeys(sp.Prices) {
			plan.Prices = append(plan.Prices, BracketPrice{
				Bracket: bracket.Bracket(b),
				Value:   decimal.NewFromFloat(sp.Prices[b]),
			})
		}

		current = append(current, plan)
	}

	legacy := make([]LegacyPlan, 0, len(snap.Legacy))
	for _, sp := range snap.Legacy {
		prices := make(map[string]decimal.Decimal, len(sp.Prices))
		for k, v := range sp.Prices {
			prices[k] = decimal.NewFromFloat(v)
		}

		legacy = append(legacy, LegacyPlan{
			ID:              sp.ID,
			Name:            sp.Name,
			Carrier:         sp.Carrier,
			ContractType:    sp.ContractType,
			Accommodation:   sp.Accommodation,
			Coparticipation: sp.Coparticipation,
			CoverageArea:    sp.CoverageArea,
			Refund:          sp.Refund,
			Extras:          sp.Extras,
			Prices:          prices,
			Featured:        sp.Featured,
			Order:           sp.Order,
			LogoURL:         sp.LogoURL,
			Active:          sp.Active == nil || *sp.Active,
		})
	}

	return NewMemoryRepository(current, legacy), nil
}

// sortedKeys orders bracket keys canonically so loads are deterministic.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ia := bracket.Index(bracket.Bracket(keys[i]))
		ib := bracket.Index(bracket.Bracket(keys[j]))
		if ia != ib {
			return ia < ib
		}
		return keys[i] < keys[j]
	})
	return keys
}

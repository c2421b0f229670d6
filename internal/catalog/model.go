package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/niltaduartte/humano-saude-sub001/internal/bracket"
	"github.com/niltaduartte/humano-saude-sub001/internal/carrier"
)

// Modality is the pricing basis a plan is sold under.
type Modality string

const (
	ModalityPF  Modality = "PF"  // individual-rated
	ModalityPME Modality = "PME" // group-rated
)

// Source tags where an entry (and the proposal built from it) came from.
type Source string

const (
	SourceCurrent  Source = "current"
	SourceLegacy   Source = "legacy"
	SourceEstimate Source = "estimate"
)

const (
	defaultCurrentCoverage = "RJ"
	defaultLegacyCoverage  = "Nacional"
	legacyNoCopay          = "Isento"
)

// Entry is the single logical plan record both catalogs are adapted into
// before pricing. Prices need not cover every bracket.
type Entry struct {
	CarrierID          string
	CarrierName        string
	PlanName           string
	Modality           Modality
	MinLives           int // 0 when not declared
	MaxLives           int // 0 when not declared
	Prices             map[bracket.Bracket]decimal.Decimal
	Coparticipation    bool
	CoparticipationPct *decimal.Decimal
	CoverageArea       string
	HospitalNetwork    []string
	Notes              *string
	Source             Source
}

// Price looks up the price for b.
func (e Entry) Price(b bracket.Bracket) (decimal.Decimal, bool) {
	p, ok := e.Prices[b]
	return p, ok
}

// AcceptsLives reports whether n beneficiaries fit the declared window.
func (e Entry) AcceptsLives(n int) bool {
	if e.MinLives > 0 && n < e.MinLives {
		return false
	}
	if e.MaxLives > 0 && n > e.MaxLives {
		return false
	}
	return true
}

// --------------------------------------------------
// Current catalog: plan header + one row per bracket
// --------------------------------------------------

type BracketPrice struct {
	Bracket bracket.Bracket
	Value   decimal.Decimal
}

type CurrentPlan struct {
	ID                 int64
	CarrierID          string
	CarrierName        string
	PlanName           string
	Modality           Modality
	MinLives           *int
	MaxLives           *int
	Coparticipation    bool
	CoparticipationPct *decimal.Decimal
	CoverageArea       *string
	HospitalNetwork    []string
	Notes              *string
	Active             bool
	Prices             []BracketPrice
}

// Entry adapts the row-per-bracket shape.
func (p CurrentPlan) Entry(r *carrier.Resolver) Entry {
	prices := make(map[bracket.Bracket]decimal.Decimal, len(p.Prices))
	for _, bp := range p.Prices {
		if _, seen := prices[bp.Bracket]; !seen {
			prices[bp.Bracket] = bp.Value
		}
	}

	name := p.CarrierName
	if name == "" {
		name = r.DisplayName(p.CarrierID)
	}

	coverage := defaultCurrentCoverage
	if p.CoverageArea != nil && *p.CoverageArea != "" {
		coverage = *p.CoverageArea
	}

	network := p.HospitalNetwork
	if network == nil {
		network = []string{}
	}

	return Entry{
		CarrierID:          p.CarrierID,
		CarrierName:        name,
		PlanName:           p.PlanName,
		Modality:           p.Modality,
		MinLives:           derefInt(p.MinLives),
		MaxLives:           derefInt(p.MaxLives),
		Prices:             prices,
		Coparticipation:    p.Coparticipation,
		CoparticipationPct: p.CoparticipationPct,
		CoverageArea:       coverage,
		HospitalNetwork:    network,
		Notes:              p.Notes,
		Source:             SourceCurrent,
	}
}

// --------------------------------------------------
// Legacy catalog: plan header with embedded price map
// --------------------------------------------------

type LegacyPlan struct {
	ID              int64
	Name            string
	Carrier         string // free text, as typed by the back office
	ContractType    string // PF | PME | Adesão
	Accommodation   string
	Coparticipation string
	CoverageArea    *string
	Refund          *string
	Extras          *string
	Prices          map[string]decimal.Decimal
	Featured        bool
	Order           int
	LogoURL         *string
	Active          bool
}

// CarrierID resolves the free-text carrier; unknown carriers get a
// squashed lower-case id so they still dedupe against themselves.
func (p LegacyPlan) CarrierID(r *carrier.Resolver) string {
	if id := r.Resolve(p.Carrier); id != "" {
		return id
	}
	return strings.Join(strings.Fields(strings.ToLower(p.Carrier)), "")
}

// HasCoparticipation reads the legacy text flag.
func (p LegacyPlan) HasCoparticipation() bool {
	return p.Coparticipation != legacyNoCopay
}

// Entry adapts the embedded-map shape. Zero prices count as missing.
func (p LegacyPlan) Entry(r *carrier.Resolver) Entry {
	prices := make(map[bracket.Bracket]decimal.Decimal, len(p.Prices))
	for k, v := range p.Prices {
		if !v.IsPositive() {
			continue
		}
		prices[bracket.Bracket(strings.TrimSpace(k))] = v
	}

	coverage := defaultLegacyCoverage
	if p.CoverageArea != nil && *p.CoverageArea != "" {
		coverage = *p.CoverageArea
	}

	return Entry{
		CarrierID:       p.CarrierID(r),
		CarrierName:     p.Carrier,
		PlanName:        p.Name,
		Modality:        Modality(p.ContractType),
		Prices:          prices,
		Coparticipation: p.HasCoparticipation(),
		CoverageArea:    coverage,
		HospitalNetwork: []string{},
		Notes:           p.Extras,
		Source:          SourceLegacy,
	}
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

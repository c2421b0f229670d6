package quote

import (
	"github.com/shopspring/decimal"

	"github.com/niltaduartte/humano-saude-sub001/internal/carrier"
	"github.com/niltaduartte/humano-saude-sub001/internal/catalog"
)

// EstimateNote marks every synthetic proposal. Consumers rely on it to tell
// placeholders from real pricing, so it is always set.
const EstimateNote = "Valor estimado, sujeito à análise personalizada"

const (
	estimatePlanName = "Plano estimado"
	estimateCoverage = "RJ"
)

// Estimate is one row of the fallback discount table.
type Estimate struct {
	CarrierID string
	Name      string
	Discount  decimal.Decimal // fraction of current spend, 0.35 = 35%
}

var DefaultEstimates = []Estimate{
	{CarrierID: "porto", Name: "Porto Saúde", Discount: decimal.RequireFromString("0.35")},
	{CarrierID: "sulamerica", Name: "SulAmérica", Discount: decimal.RequireFromString("0.28")},
	{CarrierID: "amil", Name: "Amil", Discount: decimal.RequireFromString("0.22")},
}

// FallbackEstimator synthesizes proposals when no catalog entry survives.
type FallbackEstimator struct {
	table    []Estimate
	carriers *carrier.Resolver
}

func NewFallbackEstimator(table []Estimate, carriers *carrier.Resolver) *FallbackEstimator {
	if len(table) == 0 {
		table = DefaultEstimates
	}
	return &FallbackEstimator{table: table, carriers: carriers}
}

// Estimate walks the table in order, skipping the client's carrier.
func (f *FallbackEstimator) Estimate(q quoteContext) []Proposal {
	out := make([]Proposal, 0, MaxProposals)

	for _, est := range f.table {
		if len(out) >= MaxProposals {
			break
		}
		if q.currentCarrier != "" && est.CarrierID == q.currentCarrier {
			continue
		}

		total := q.spend.Mul(decimal.NewFromInt(1).Sub(est.Discount)).Round(2)
		savings, pct := computeSavings(q.spend, total)
		if !savings.IsPositive() {
			continue
		}

		note := EstimateNote
		out = append(out, Proposal{
			CarrierID:       est.CarrierID,
			CarrierName:     est.Name,
			PlanName:        estimatePlanName,
			Logo:            f.carriers.Logo(est.CarrierID),
			Total:           total,
			Brackets:        splitEvenly(total, q),
			CoverageArea:    estimateCoverage,
			HospitalNetwork: []string{},
			Savings:         savings,
			SavingsPct:      pct,
			Notes:           &note,
			Source:          catalog.SourceEstimate,
		})
	}

	return out
}

// splitEvenly divides total per life, truncated to 2dp; the last life
// absorbs the remainder so the parts always sum to total and none is
// negative.
func splitEvenly(total decimal.Decimal, q quoteContext) []BracketValue {
	n := q.lives()
	if n == 0 {
		return []BracketValue{}
	}

	share := total.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	values := make([]BracketValue, n)
	allocated := decimal.Zero

	for i, b := range q.brackets {
		v := share
		if i == n-1 {
			v = total.Sub(allocated)
		}
		values[i] = BracketValue{Bracket: b, Value: v}
		allocated = allocated.Add(v)
	}
	return values
}

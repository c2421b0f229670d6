package quote

import (
	"github.com/shopspring/decimal"

	"github.com/niltaduartte/humano-saude-sub001/internal/carrier"
	"github.com/niltaduartte/humano-saude-sub001/internal/catalog"
)

var hundred = decimal.NewFromInt(100)

// Calculator prices catalog entries against a request. Both catalogs go
// through the same code once adapted into catalog.Entry.
type Calculator struct {
	carriers *carrier.Resolver
}

func NewCalculator(carriers *carrier.Resolver) *Calculator {
	return &Calculator{carriers: carriers}
}

// Price evaluates entries in order and keeps the ones that cover every
// requested bracket and save the client money.
func (c *Calculator) Price(entries []catalog.Entry, q quoteContext) []Proposal {
	var out []Proposal
	for _, e := range entries {
		if p, ok := c.priceEntry(e, q); ok {
			out = append(out, p)
		}
	}
	return out
}

func (c *Calculator) priceEntry(e catalog.Entry, q quoteContext) (Proposal, bool) {
	if e.Modality != q.modality {
		return Proposal{}, false
	}
	if q.currentCarrier != "" && e.CarrierID == q.currentCarrier {
		return Proposal{}, false
	}
	if !e.AcceptsLives(q.lives()) {
		return Proposal{}, false
	}

	// a household is quoted whole or not at all
	total := decimal.Zero
	values := make([]BracketValue, 0, len(q.brackets))
	for _, b := range q.brackets {
		price, ok := e.Price(b)
		if !ok {
			return Proposal{}, false
		}
		total = total.Add(price)
		values = append(values, BracketValue{Bracket: b, Value: price})
	}
	total = total.Round(2)

	savings, pct := computeSavings(q.spend, total)
	if !savings.IsPositive() {
		return Proposal{}, false
	}

	network := e.HospitalNetwork
	if network == nil {
		network = []string{}
	}

	return Proposal{
		CarrierID:          e.CarrierID,
		CarrierName:        e.CarrierName,
		PlanName:           e.PlanName,
		Logo:               c.carriers.Logo(e.CarrierID),
		Total:              total,
		Brackets:           values,
		Coparticipation:    e.Coparticipation,
		CoparticipationPct: e.CoparticipationPct,
		CoverageArea:       e.CoverageArea,
		HospitalNetwork:    network,
		Savings:            savings,
		SavingsPct:         pct,
		Notes:              e.Notes,
		Source:             e.Source,
	}, true
}

// computeSavings returns spend-total (2dp) and its share of spend in
// percent (1dp). The percentage is derived from the rounded value so the
// two figures always agree.
func computeSavings(spend, total decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	savings := spend.Sub(total).Round(2)
	if spend.IsZero() {
		return savings, decimal.Zero
	}
	pct := savings.Div(spend).Mul(hundred).Round(1)
	return savings, pct
}

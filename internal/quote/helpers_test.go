package quote

import (
	"github.com/shopspring/decimal"

	"github.com/niltaduartte/humano-saude-sub001/internal/bracket"
	"github.com/niltaduartte/humano-saude-sub001/internal/catalog"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func prices(kv ...string) map[bracket.Bracket]decimal.Decimal {
	out := make(map[bracket.Bracket]decimal.Decimal, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[bracket.Bracket(kv[i])] = dec(kv[i+1])
	}
	return out
}

func entry(carrierID string, modality catalog.Modality, p map[bracket.Bracket]decimal.Decimal) catalog.Entry {
	return catalog.Entry{
		CarrierID:    carrierID,
		CarrierName:  carrierID,
		PlanName:     carrierID + " plan",
		Modality:     modality,
		Prices:       p,
		CoverageArea: "RJ",
		Source:       catalog.SourceCurrent,
	}
}

func qctx(spend string, modality catalog.Modality, current string, brackets ...bracket.Bracket) quoteContext {
	return quoteContext{
		spend:          dec(spend),
		brackets:       brackets,
		modality:       modality,
		currentCarrier: current,
	}
}

func proposal(carrierID, pct string, source catalog.Source) Proposal {
	return Proposal{CarrierID: carrierID, SavingsPct: dec(pct), Source: source}
}

func carrierIDs(ps []Proposal) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.CarrierID
	}
	return out
}

package quote

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/niltaduartte/humano-saude-sub001/internal/bracket"
	"github.com/niltaduartte/humano-saude-sub001/internal/carrier"
)

// Small PME groups do not get the promotional table price: the published
// legacy prices already carry a 10.06% discount that is removed here.
const pmeSmallGroupLives = 5

var pmePromoFactor = decimal.RequireFromString("0.8994")

// PlanQuery lists every legacy plan of a contract type priced for a household.
type PlanQuery struct {
	ContractType  string
	Accommodation string
	Ages          []string
}

type PlanListing struct {
	ID              int64
	Name            string
	Carrier         string
	Accommodation   string
	Coparticipation string
	CoverageArea    *string
	Refund          *string
	Extras          *string
	Total           decimal.Decimal
	Featured        bool
	LogoURL         *string
}

// ListPlans prices the legacy catalog without comparing against a current
// spend. Plans missing any requested bracket are left out; featured plans
// come first, then cheapest first.
func (s *Service) ListPlans(ctx context.Context, q PlanQuery) ([]PlanListing, error) {
	contractType := normalizeContractType(q.ContractType)
	if contractType == "" {
		return nil, fmt.Errorf("%w: tipo_contratacao is required", ErrInvalidRequest)
	}
	if len(q.Ages) == 0 {
		return nil, fmt.Errorf("%w: idades must not be empty", ErrInvalidRequest)
	}

	readCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	plans, err := s.catalogs.LegacyPlans(readCtx, contractType)
	if err != nil {
		return nil, fmt.Errorf("read legacy plans: %w", err)
	}

	brackets := bracket.NormalizeAll(q.Ages)
	grossUp := contractType == "PME" && len(brackets) < pmeSmallGroupLives
	wantAccommodation := carrier.Normalize(q.Accommodation)

	listings := make([]PlanListing, 0, len(plans))
	for _, p := range plans {
		if wantAccommodation != "" && carrier.Normalize(p.Accommodation) != wantAccommodation {
			continue
		}

		entry := p.Entry(s.carriers)
		total := decimal.Zero
		complete := true
		for _, b := range brackets {
			price, ok := entry.Price(b)
			if !ok {
				complete = false
				break
			}
			if grossUp {
				price = price.Div(pmePromoFactor)
			}
			total = total.Add(price)
		}
		if !complete {
			continue
		}

		listings = append(listings, PlanListing{
			ID:              p.ID,
			Name:            p.Name,
			Carrier:         p.Carrier,
			Accommodation:   p.Accommodation,
			Coparticipation: p.Coparticipation,
			CoverageArea:    p.CoverageArea,
			Refund:          p.Refund,
			Extras:          p.Extras,
			Total:           total.Round(2),
			Featured:        p.Featured,
			LogoURL:         p.LogoURL,
		})
	}

	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].Featured != listings[j].Featured {
			return listings[i].Featured
		}
		return listings[i].Total.LessThan(listings[j].Total)
	})

	return listings, nil
}

func normalizeContractType(raw string) string {
	switch strings.ToUpper(carrier.Normalize(raw)) {
	case "PF":
		return "PF"
	case "PME":
		return "PME"
	case "ADESAO":
		return "Adesão"
	}
	return strings.TrimSpace(raw)
}

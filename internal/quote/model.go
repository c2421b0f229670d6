package quote

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/niltaduartte/humano-saude-sub001/internal/bracket"
	"github.com/niltaduartte/humano-saude-sub001/internal/catalog"
)

// ErrInvalidRequest wraps every input validation failure.
var ErrInvalidRequest = errors.New("invalid quote request")

// MaxProposals caps how many distinct carriers are returned.
const MaxProposals = 3

type PersonType string

const (
	PersonIndividual   PersonType = "PF"
	PersonOrganization PersonType = "PJ"
)

// Request is a validated simulation input.
type Request struct {
	CurrentSpend   decimal.Decimal
	CurrentCarrier string
	PersonType     PersonType
	Ages           []string
}

// BracketValue is the price of one life in the order the ages were sent.
type BracketValue struct {
	Bracket bracket.Bracket
	Value   decimal.Decimal
}

// Proposal is a priced, savings-annotated competitor offer. It only
// lives for the duration of one evaluation.
type Proposal struct {
	CarrierID          string
	CarrierName        string
	PlanName           string
	Logo               string
	Total              decimal.Decimal
	Brackets           []BracketValue
	Coparticipation    bool
	CoparticipationPct *decimal.Decimal
	CoverageArea       string
	HospitalNetwork    []string
	Savings            decimal.Decimal
	SavingsPct         decimal.Decimal
	Notes              *string
	Source             catalog.Source
}

// Result is the outcome of one simulation.
type Result struct {
	Proposals    []Proposal
	CurrentSpend decimal.Decimal
	Lives        int
	Modality     catalog.Modality
	Estimated    bool
}

// quoteContext is everything pricing needs from the request, computed once.
type quoteContext struct {
	spend          decimal.Decimal
	brackets       []bracket.Bracket
	modality       catalog.Modality
	currentCarrier string // "" means nothing to exclude
}

func (q quoteContext) lives() int {
	return len(q.brackets)
}

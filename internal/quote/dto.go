package quote

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/niltaduartte/humano-saude-sub001/internal/bracket"
	"github.com/niltaduartte/humano-saude-sub001/internal/carrier"
)

// AgeInput accepts an age sent either as a JSON string ("34", "29-33")
// or as a bare number, which is kept in its literal form ("34.5", "1e30").
type AgeInput string

func (a *AgeInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AgeInput(s)
		return nil
	}

	if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return fmt.Errorf("idade must be a string or a number, got %s", data)
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil && !errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("idade must be a string or a number: %w", err)
	}
	// the literal is kept as sent; bracket normalization reads its
	// leading integer
	*a = AgeInput(data)
	return nil
}

// --------------------------------------------------
// POST /quote/simulate
// --------------------------------------------------

type SimulateRequest struct {
	ValorAtual     decimal.Decimal `json:"valor_atual"`
	OperadoraAtual *string         `json:"operadora_atual"`
	Idades         []AgeInput      `json:"idades"`
	TipoPessoa     string          `json:"tipo_pessoa"`
}

func (r SimulateRequest) toRequest() Request {
	ages := make([]string, len(r.Idades))
	for i, a := range r.Idades {
		ages[i] = string(a)
	}

	var carrierName string
	if r.OperadoraAtual != nil {
		carrierName = *r.OperadoraAtual
	}

	return Request{
		CurrentSpend:   r.ValorAtual,
		CurrentCarrier: carrierName,
		PersonType:     ParsePersonType(r.TipoPessoa),
		Ages:           ages,
	}
}

type FaixaValor struct {
	Faixa string  `json:"faixa"`
	Valor float64 `json:"valor"`
}

type PropostaResponse struct {
	OperadoraID       string       `json:"operadora_id"`
	OperadoraNome     string       `json:"operadora_nome"`
	PlanoNome         string       `json:"plano_nome"`
	Logo              string       `json:"logo"`
	ValorTotal        float64      `json:"valor_total"`
	ValoresPorFaixa   []FaixaValor `json:"valores_por_faixa"`
	Coparticipacao    bool         `json:"coparticipacao"`
	CoparticipacaoPct *float64     `json:"coparticipacao_pct,omitempty"`
	Abrangencia       string       `json:"abrangencia"`
	RedeHospitalar    []string     `json:"rede_hospitalar"`
	EconomiaValor     float64      `json:"economia_valor"`
	EconomiaPct       float64      `json:"economia_pct"`
	Notas             *string      `json:"notas"`
}

type SimulateResponse struct {
	Success    bool               `json:"success"`
	Propostas  []PropostaResponse `json:"propostas"`
	ValorAtual float64            `json:"valor_atual"`
	QtdVidas   int                `json:"qtd_vidas"`
	Modalidade string             `json:"modalidade"`
}

func NewSimulateResponse(res *Result) SimulateResponse {
	propostas := make([]PropostaResponse, 0, len(res.Proposals))
	for _, p := range res.Proposals {
		faixas := make([]FaixaValor, len(p.Brackets))
		for i, bv := range p.Brackets {
			faixas[i] = FaixaValor{Faixa: string(bv.Bracket), Valor: bv.Value.InexactFloat64()}
		}

		var copayPct *float64
		if p.CoparticipationPct != nil {
			v := p.CoparticipationPct.InexactFloat64()
			copayPct = &v
		}

		propostas = append(propostas, PropostaResponse{
			OperadoraID:       p.CarrierID,
			OperadoraNome:     p.CarrierName,
			PlanoNome:         p.PlanName,
			Logo:              p.Logo,
			ValorTotal:        p.Total.InexactFloat64(),
			ValoresPorFaixa:   faixas,
			Coparticipacao:    p.Coparticipation,
			CoparticipacaoPct: copayPct,
			Abrangencia:       p.CoverageArea,
			RedeHospitalar:    p.HospitalNetwork,
			EconomiaValor:     p.Savings.InexactFloat64(),
			EconomiaPct:       p.SavingsPct.InexactFloat64(),
			Notas:             p.Notes,
		})
	}

	return SimulateResponse{
		Success:    true,
		Propostas:  propostas,
		ValorAtual: res.CurrentSpend.InexactFloat64(),
		QtdVidas:   res.Lives,
		Modalidade: string(res.Modality),
	}
}

// --------------------------------------------------
// POST /quote/plans
// --------------------------------------------------

type PlansRequest struct {
	TipoContratacao string     `json:"tipo_contratacao"`
	Acomodacao      string     `json:"acomodacao"`
	Idades          []AgeInput `json:"idades"`
}

type PlanoResponse struct {
	ID             int64   `json:"id"`
	Nome           string  `json:"nome"`
	Operadora      string  `json:"operadora"`
	Acomodacao     string  `json:"acomodacao"`
	Coparticipacao string  `json:"coparticipacao"`
	Abrangencia    *string `json:"abrangencia"`
	Reembolso      *string `json:"reembolso"`
	Extras         *string `json:"extras"`
	ValorTotal     float64 `json:"valor_total"`
	Destaque       bool    `json:"destaque"`
	LogoURL        *string `json:"logo_url"`
}

type PlansResponse struct {
	Success    bool            `json:"success"`
	Total      int             `json:"total"`
	Resultados []PlanoResponse `json:"resultados"`
}

func NewPlansResponse(listings []PlanListing) PlansResponse {
	out := make([]PlanoResponse, len(listings))
	for i, l := range listings {
		out[i] = PlanoResponse{
			ID:             l.ID,
			Nome:           l.Name,
			Operadora:      l.Carrier,
			Acomodacao:     l.Accommodation,
			Coparticipacao: l.Coparticipation,
			Abrangencia:    l.CoverageArea,
			Reembolso:      l.Refund,
			Extras:         l.Extras,
			ValorTotal:     l.Total.InexactFloat64(),
			Destaque:       l.Featured,
			LogoURL:        l.LogoURL,
		}
	}
	return PlansResponse{Success: true, Total: len(out), Resultados: out}
}

// --------------------------------------------------
// GET /quote/brackets
// --------------------------------------------------

type FaixaResponse struct {
	Faixa    string `json:"faixa"`
	IdadeMin int    `json:"idade_min"`
	IdadeMax *int   `json:"idade_max"` // null for the open-ended bracket
}

func NewBracketsResponse() []FaixaResponse {
	all := bracket.All()
	out := make([]FaixaResponse, 0, len(all))
	for _, b := range all {
		lo, hi, _ := bracket.Bounds(b)
		f := FaixaResponse{Faixa: string(b), IdadeMin: lo}
		if hi >= 0 {
			h := hi
			f.IdadeMax = &h
		}
		out = append(out, f)
	}
	return out
}

// --------------------------------------------------
// GET /quote/carriers
// --------------------------------------------------

type OperadoraResponse struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
	Logo string `json:"logo"`
}

func NewCarriersResponse(infos []carrier.Info) []OperadoraResponse {
	out := make([]OperadoraResponse, len(infos))
	for i, info := range infos {
		out[i] = OperadoraResponse{ID: info.ID, Nome: info.Name, Logo: info.Logo}
	}
	return out
}

package catalog

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/niltaduartte/humano-saude-sub001/internal/bracket"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Current catalog (planos_operadora + precos_faixa)
// --------------------------------------------------
func (r *PostgresRepository) CurrentPlans(
	ctx context.Context,
	modality Modality,
) ([]CurrentPlan, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			p.id,
			p.operadora_id,
			COALESCE(p.operadora_nome, ''),
			p.plano_nome,
			p.modalidade,
			p.vidas_min,
			p.vidas_max,
			COALESCE(p.coparticipacao, false),
			p.coparticipacao_pct::text,
			p.abrangencia,
			COALESCE(p.rede_hospitalar, '{}'),
			p.notas,
			pf.faixa_etaria,
			pf.valor::text
		FROM planos_operadora p
		LEFT JOIN precos_faixa pf
		  ON pf.plano_id = p.id
		WHERE
			p.modalidade = $1
			AND p.ativo = true
		ORDER BY p.operadora_nome ASC, p.id ASC, pf.id ASC
	`, string(modality))
	if err != nil {
		return nil, fmt.Errorf("query current plans: %w", err)
	}
	defer rows.Close()

	var plans []CurrentPlan

	for rows.Next() {
		var (
			p        CurrentPlan
			modal    string
			copayPct *string
			faixa    *string
			valor    *string
		)

		if err := rows.Scan(
			&p.ID,
			&p.CarrierID,
			&p.CarrierName,
			&p.PlanName,
			&modal,
			&p.MinLives,
			&p.MaxLives,
			&p.Coparticipation,
			&copayPct,
			&p.CoverageArea,
			&p.HospitalNetwork,
			&p.Notes,
			&faixa,
			&valor,
		); err != nil {
			return nil, fmt.Errorf("scan current plan: %w", err)
		}

		// rows arrive grouped by plan id
		if n := len(plans); n == 0 || plans[n-1].ID != p.ID {
			p.Modality = Modality(modal)
			p.Active = true
			if copayPct != nil {
				if d, err := decimal.NewFromString(*copayPct); err == nil {
					p.CoparticipationPct = &d
				}
			}
			plans = append(plans, p)
		}

		if faixa == nil || valor == nil {
			continue
		}
		v, err := decimal.NewFromString(*valor)
		if err != nil {
			continue
		}

		last := &plans[len(plans)-1]
		last.Prices = append(last.Prices, BracketPrice{
			Bracket: bracket.Bracket(*faixa),
			Value:   v,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate current plans: %w", err)
	}

	return plans, nil
}

// --------------------------------------------------
// Legacy catalog (planos_saude, prices in JSONB)
// --------------------------------------------------
func (r *PostgresRepository) LegacyPlans(
	ctx context.Context,
	contractType string,
) ([]LegacyPlan, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			nome,
			operadora,
			tipo_contratacao,
			COALESCE(acomodacao, ''),
			COALESCE(coparticipacao, ''),
			abrangencia,
			reembolso,
			extras,
			valores,
			COALESCE(destaque, false),
			COALESCE(ordem, 0),
			logo_url
		FROM planos_saude
		WHERE
			tipo_contratacao = $1
			AND ativo = true
		ORDER BY ordem ASC, id ASC
	`, contractType)
	if err != nil {
		return nil, fmt.Errorf("query legacy plans: %w", err)
	}
	defer rows.Close()

	var plans []LegacyPlan

	for rows.Next() {
		var (
			p   LegacyPlan
			raw []byte
		)

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Carrier,
			&p.ContractType,
			&p.Accommodation,
			&p.Coparticipation,
			&p.CoverageArea,
			&p.Refund,
			&p.Extras,
			&raw,
			&p.Featured,
			&p.Order,
			&p.LogoURL,
		); err != nil {
			return nil, fmt.Errorf("scan legacy plan: %w", err)
		}

		p.Active = true
		p.Prices = decodePriceMap(raw)
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy plans: %w", err)
	}

	return plans, nil
}

// decodePriceMap reads the JSONB bracket map. A malformed map yields no
// prices, which excludes the plan at pricing time.
func decodePriceMap(raw []byte) map[string]decimal.Decimal {
	if len(raw) == 0 {
		return nil
	}

	var prices map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &prices); err != nil {
		return nil
	}
	return prices
}

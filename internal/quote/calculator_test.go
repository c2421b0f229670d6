package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niltaduartte/humano-saude-sub001/internal/bracket"
	"github.com/niltaduartte/humano-saude-sub001/internal/carrier"
	"github.com/niltaduartte/humano-saude-sub001/internal/catalog"
)

func TestCalculator_FullCoverage(t *testing.T) {
	calc := NewCalculator(carrier.Default())
	q := qctx("1000", catalog.ModalityPME, "amil", bracket.B29to33, bracket.B0to18)

	got := calc.Price([]catalog.Entry{
		entry("sulamerica", catalog.ModalityPME, prices("29-33", "400", "0-18", "150")),
	}, q)

	require.Len(t, got, 1)
	p := got[0]
	assert.True(t, p.Total.Equal(dec("550")))
	assert.True(t, p.Savings.Equal(dec("450")))
	assert.True(t, p.SavingsPct.Equal(dec("45.0")))
	assert.Equal(t, "/images/operadoras/sulamerica-logo.png", p.Logo)
	require.Len(t, p.Brackets, 2)
	assert.Equal(t, bracket.B29to33, p.Brackets[0].Bracket)
	assert.True(t, p.Brackets[1].Value.Equal(dec("150")))
	assert.NotNil(t, p.HospitalNetwork)
}

func TestCalculator_MissingBracketExcludesEntry(t *testing.T) {
	calc := NewCalculator(carrier.Default())
	q := qctx("1000", catalog.ModalityPME, "amil", bracket.B29to33, bracket.B0to18)

	got := calc.Price([]catalog.Entry{
		entry("sulamerica", catalog.ModalityPME, prices("29-33", "400")),
	}, q)

	assert.Empty(t, got)
}

func TestCalculator_Filters(t *testing.T) {
	calc := NewCalculator(carrier.Default())
	full := prices("29-33", "300", "34-38", "350")

	windowed := entry("bradesco", catalog.ModalityPME, full)
	windowed.MinLives = 3

	capped := entry("porto", catalog.ModalityPME, full)
	capped.MaxLives = 1

	tests := []struct {
		name  string
		entry catalog.Entry
		q     quoteContext
		want  bool
	}{
		{"match", entry("porto", catalog.ModalityPME, full), qctx("1000", catalog.ModalityPME, "", bracket.B29to33, bracket.B34to38), true},
		{"wrong modality", entry("porto", catalog.ModalityPF, full), qctx("1000", catalog.ModalityPME, "", bracket.B29to33, bracket.B34to38), false},
		{"current carrier", entry("amil", catalog.ModalityPME, full), qctx("1000", catalog.ModalityPME, "amil", bracket.B29to33, bracket.B34to38), false},
		{"below min lives", windowed, qctx("1000", catalog.ModalityPME, "", bracket.B29to33, bracket.B34to38), false},
		{"above max lives", capped, qctx("1000", catalog.ModalityPME, "", bracket.B29to33, bracket.B34to38), false},
		{"costs more", entry("porto", catalog.ModalityPME, full), qctx("600", catalog.ModalityPME, "", bracket.B29to33, bracket.B34to38), false},
		{"costs the same", entry("porto", catalog.ModalityPME, full), qctx("650", catalog.ModalityPME, "", bracket.B29to33, bracket.B34to38), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Price([]catalog.Entry{tt.entry}, tt.q)
			assert.Equal(t, tt.want, len(got) == 1)
		})
	}
}

func TestCalculator_NoExclusionWhenCarrierUnknown(t *testing.T) {
	calc := NewCalculator(carrier.Default())
	q := qctx("1000", catalog.ModalityPF, "", bracket.B29to33)

	got := calc.Price([]catalog.Entry{
		entry("amil", catalog.ModalityPF, prices("29-33", "500")),
	}, q)

	assert.Len(t, got, 1)
}

func TestCalculator_RepeatedBracketCountsEachLife(t *testing.T) {
	calc := NewCalculator(carrier.Default())
	q := qctx("1000", catalog.ModalityPME, "", bracket.B29to33, bracket.B29to33)

	got := calc.Price([]catalog.Entry{
		entry("porto", catalog.ModalityPME, prices("29-33", "200.005")),
	}, q)

	require.Len(t, got, 1)
	assert.True(t, got[0].Total.Equal(dec("400.01")))
	assert.Len(t, got[0].Brackets, 2)
}

func TestComputeSavings(t *testing.T) {
	tests := []struct {
		spend, total string
		savings, pct string
	}{
		{"1000", "550", "450", "45"},
		{"1500", "1234.56", "265.44", "17.7"},
		{"300", "299.99", "0.01", "0"},
		{"3", "1", "2", "66.7"},
	}

	for _, tt := range tests {
		savings, pct := computeSavings(dec(tt.spend), dec(tt.total))
		assert.True(t, savings.Equal(dec(tt.savings)), "savings %s-%s = %s", tt.spend, tt.total, savings)
		assert.True(t, pct.Equal(dec(tt.pct)), "pct %s-%s = %s", tt.spend, tt.total, pct)
	}
}

package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "DATABASE_URL", "CATALOG_SNAPSHOT_FILE",
		"CATALOG_SNAPSHOT_KEY", "CATALOG_TIMEOUT", "CORS_ORIGINS",
		"QUOTE_TABLES_FILE", "R2_ENDPOINT", "R2_ACCESS_KEY",
		"R2_SECRET_KEY", "R2_BUCKET_NAME",
	} {
		t.Setenv(k, "")
	}
	// keep godotenv from picking up a developer .env
	t.Setenv("APP_ENV", "production")
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"CATALOG_SNAPSHOT_FILE": "catalog.yaml"})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.True(t, cfg.Production())
	assert.False(t, cfg.R2.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"PORT":            "9090",
		"DATABASE_URL":    "postgres://localhost/quotes",
		"CATALOG_TIMEOUT": "1500",
		"CORS_ORIGINS":    "https://a.example, https://b.example,",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.CatalogTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no catalog source", map[string]string{}},
		{"bad timeout", map[string]string{"DATABASE_URL": "x", "CATALOG_TIMEOUT": "soon"}},
		{"zero timeout", map[string]string{"DATABASE_URL": "x", "CATALOG_TIMEOUT": "0s"}},
		{"snapshot key without R2", map[string]string{"CATALOG_SNAPSHOT_KEY": "catalog.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseTables(t *testing.T) {
	data := []byte(`
carriers:
  - id: hapvida
    keywords: [hapvida, "notre dame"]
estimates:
  - carrier_id: hapvida
    name: Hapvida
    discount: 0.4
`)

	tables, err := ParseTables(data)
	require.NoError(t, err)

	r := tables.Resolver()
	assert.Equal(t, "hapvida", r.Resolve("Notre Dame Intermédica"))
	assert.Equal(t, "", r.Resolve("Amil"))

	est := tables.QuoteEstimates()
	require.Len(t, est, 1)
	assert.True(t, est[0].Discount.Equal(decimal.RequireFromString("0.4")))
}

func TestParseTables_Invalid(t *testing.T) {
	_, err := ParseTables([]byte("estimates:\n  - carrier_id: amil\n    discount: 1.5\n"))
	assert.ErrorContains(t, err, "discount")

	_, err = ParseTables([]byte("carriers:\n  - id: amil\n"))
	assert.ErrorContains(t, err, "keywords")

	_, err = ParseTables([]byte("carriers: ["))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoadTables_EmptyPathUsesDefaults(t *testing.T) {
	tables, err := LoadTables("")
	require.NoError(t, err)

	assert.Nil(t, tables.QuoteEstimates())
	assert.Equal(t, "amil", tables.Resolver().Resolve("AMIL 400"))
}

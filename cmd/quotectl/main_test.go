package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate",
		"--catalog", "testdata/catalog.yaml",
		"--spend", "1000",
		"--carrier", "Amil",
		"--ages", "30,5",
	)
	require.NoError(t, err)

	var resp struct {
		Propostas []struct {
			OperadoraID string  `json:"operadora_id"`
			ValorTotal  float64 `json:"valor_total"`
		} `json:"propostas"`
		Modalidade string `json:"modalidade"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "PME", resp.Modalidade)
	require.Len(t, resp.Propostas, 2)
	assert.Equal(t, "levesaude", resp.Propostas[0].OperadoraID)
	assert.Equal(t, 370.0, resp.Propostas[0].ValorTotal)
	assert.Equal(t, "sulamerica", resp.Propostas[1].OperadoraID)
	assert.Equal(t, 550.0, resp.Propostas[1].ValorTotal)
}

func TestSimulateCommand_Errors(t *testing.T) {
	_, err := run(t, "simulate", "--catalog", "testdata/catalog.yaml", "--spend", "abc", "--ages", "30")
	assert.ErrorContains(t, err, "invalid --spend")

	_, err = run(t, "simulate", "--catalog", "testdata/missing.yaml", "--spend", "100", "--ages", "30")
	assert.ErrorContains(t, err, "failed to read snapshot")

	_, err = run(t, "simulate", "--spend", "100", "--ages", "30")
	assert.Error(t, err)
}

func TestBracketsCommand(t *testing.T) {
	out, err := run(t, "brackets")
	require.NoError(t, err)
	assert.Contains(t, out, `"faixa": "59+"`)
}

func TestCarriersCommand(t *testing.T) {
	out, err := run(t, "carriers")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "medsenior"`)
}

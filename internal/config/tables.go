package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/niltaduartte/humano-saude-sub001/internal/carrier"
	"github.com/niltaduartte/humano-saude-sub001/internal/quote"
)

// Tables holds the operator-editable lookup data. Any section left empty
// keeps the built-in default.
type Tables struct {
	Carriers  []carrier.Rule `yaml:"carriers"`
	Info      []carrier.Info `yaml:"carrier_info"`
	Estimates []EstimateRow  `yaml:"estimates"`
}

type EstimateRow struct {
	CarrierID string  `yaml:"carrier_id"`
	Name      string  `yaml:"name"`
	Discount  float64 `yaml:"discount"`
}

func DefaultTables() Tables {
	return Tables{}
}

// LoadTables reads a tables YAML file. An empty path yields the defaults.
func LoadTables(path string) (Tables, error) {
	if path == "" {
		return DefaultTables(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read quote tables: %w", err)
	}
	return ParseTables(data)
}

func ParseTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("failed to parse quote tables YAML: %w", err)
	}

	for i, e := range t.Estimates {
		if e.CarrierID == "" {
			return Tables{}, fmt.Errorf("estimates[%d]: carrier_id is required", i)
		}
		if e.Discount <= 0 || e.Discount >= 1 {
			return Tables{}, fmt.Errorf("estimates[%d]: discount must be between 0 and 1", i)
		}
	}
	for i, r := range t.Carriers {
		if len(r.Keywords) == 0 {
			return Tables{}, fmt.Errorf("carriers[%d]: keywords are required", i)
		}
	}
	return t, nil
}

// Resolver builds the carrier resolver, falling back to the built-in rules
// and presentation data section by section.
func (t Tables) Resolver() *carrier.Resolver {
	rules := t.Carriers
	if len(rules) == 0 {
		rules = carrier.DefaultRules
	}
	info := t.Info
	if len(info) == 0 {
		info = carrier.DefaultInfo
	}
	return carrier.NewResolver(rules, info)
}

// QuoteEstimates converts the fallback table; nil means use the default.
func (t Tables) QuoteEstimates() []quote.Estimate {
	if len(t.Estimates) == 0 {
		return nil
	}
	out := make([]quote.Estimate, len(t.Estimates))
	for i, e := range t.Estimates {
		out[i] = quote.Estimate{
			CarrierID: e.CarrierID,
			Name:      e.Name,
			Discount:  decimal.NewFromFloat(e.Discount),
		}
	}
	return out
}

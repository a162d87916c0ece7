// Package seed loads the default chart of accounts and tax codes a new
// tenant starts from.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed chart.yaml
var chartYAML []byte

//go:embed tax_codes.yaml
var taxCodesYAML []byte

// AccountDef is one account of the default chart.
type AccountDef struct {
	Code        string             `yaml:"code"`
	Name        string             `yaml:"name"`
	Type        domain.AccountType `yaml:"type"`
	Parent      string             `yaml:"parent"`
	Header      bool               `yaml:"header"`
	System      bool               `yaml:"system"`
	Description string             `yaml:"description"`
}

// TaxCodeDef is one default tax code. Account fields hold chart codes.
type TaxCodeDef struct {
	Code           string                   `yaml:"code"`
	Name           string                   `yaml:"name"`
	Type           domain.TaxType           `yaml:"type"`
	Category       domain.TaxCategory       `yaml:"category"`
	Rate           decimal.Decimal          `yaml:"rate"`
	Method         domain.CalculationMethod `yaml:"method"`
	Section        string                   `yaml:"section"`
	Threshold      decimal.Decimal          `yaml:"threshold"`
	InputAccount   string                   `yaml:"input_account"`
	OutputAccount  string                   `yaml:"output_account"`
	PayableAccount string                   `yaml:"payable_account"`
}

type chartFile struct {
	Accounts []AccountDef `yaml:"accounts"`
}

type taxCodeFile struct {
	TaxCodes []TaxCodeDef `yaml:"tax_codes"`
}

// Chart returns the default chart in file order. Parents always precede
// their children.
func Chart() ([]AccountDef, error) {
	return parseChart(chartYAML)
}

// TaxCodes returns the default tax codes.
func TaxCodes() ([]TaxCodeDef, error) {
	var f taxCodeFile
	if err := yaml.Unmarshal(taxCodesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse tax codes: %w", err)
	}
	for _, tc := range f.TaxCodes {
		if tc.Type != domain.TaxGST && tc.Type != domain.TaxTDS {
			return nil, fmt.Errorf("tax code %s: unknown type %q", tc.Code, tc.Type)
		}
	}
	return f.TaxCodes, nil
}

func parseChart(raw []byte) ([]AccountDef, error) {
	var f chartFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse chart: %w", err)
	}
	seen := make(map[string]domain.AccountType, len(f.Accounts))
	for _, a := range f.Accounts {
		if !a.Type.Valid() {
			return nil, fmt.Errorf("account %s: unknown type %q", a.Code, a.Type)
		}
		if _, dup := seen[a.Code]; dup {
			return nil, fmt.Errorf("account %s: duplicate code", a.Code)
		}
		if a.Parent != "" {
			pt, ok := seen[a.Parent]
			if !ok {
				return nil, fmt.Errorf("account %s: parent %s must be listed first", a.Code, a.Parent)
			}
			if pt != a.Type {
				return nil, fmt.Errorf("account %s: type differs from parent %s", a.Code, a.Parent)
			}
		}
		seen[a.Code] = a.Type
	}
	return f.Accounts, nil
}

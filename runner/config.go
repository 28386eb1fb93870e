package runner

import (
	"github.com/shopspring/decimal"

	"github.com/kbukum/catalogq/query"
	"github.com/kbukum/catalogq/validation"
)

// Config holds the parameters of the query operations.
type Config struct {
	ExpensiveThreshold decimal.Decimal `yaml:"expensive_threshold" mapstructure:"expensive_threshold" json:"expensive_threshold" validate:"dgte0"`
	TaxMultiplier      decimal.Decimal `yaml:"tax_multiplier" mapstructure:"tax_multiplier" json:"tax_multiplier" validate:"dgte0"`
}

// DefaultConfig returns the reference parameters: threshold 100, multiplier 1.1.
func DefaultConfig() Config {
	return Config{
		ExpensiveThreshold: query.DefaultExpensiveThreshold,
		TaxMultiplier:      query.DefaultTaxMultiplier,
	}
}

// Defaults returns DefaultConfig as loader defaults under prefix, so an
// explicit zero in a config file is kept.
func Defaults(prefix string) map[string]any {
	d := DefaultConfig()
	return map[string]any{
		prefix + ".expensive_threshold": d.ExpensiveThreshold.String(),
		prefix + ".tax_multiplier":      d.TaxMultiplier.String(),
	}
}

// Validate rejects negative parameters.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

package config

import (
	"fmt"
	"os"
)

// Constraints tunes record generation. Every field is optional; absent fields
// keep their documented defaults. Income ranges are [low, high] pairs keyed
// by employment type.
type Constraints struct {
	MinAge                 int                    `json:"min_age" yaml:"min_age"`
	MaxAge                 int                    `json:"max_age" yaml:"max_age"`
	Country                string                 `json:"country,omitempty" yaml:"country,omitempty"`
	Currency               string                 `json:"currency,omitempty" yaml:"currency,omitempty"`
	Nationality            string                 `json:"nationality,omitempty" yaml:"nationality,omitempty"`
	EmploymentDistribution map[string]float64     `json:"employment_distribution,omitempty" yaml:"employment_distribution,omitempty"`
	MonthlyIncomeRanges    map[string][2]float64  `json:"monthly_income_ranges,omitempty" yaml:"monthly_income_ranges,omitempty"`
}

// DefaultConstraints returns the documented defaults: ages 0–90, no fixed
// country/currency/nationality, and the generator's built-in employment and
// income tables.
func DefaultConstraints() Constraints {
	return Constraints{MinAge: 0, MaxAge: 90}
}

// LoadConstraints reads a constraints document, overlaying it on the
// defaults. An empty path returns the defaults unchanged.
func LoadConstraints(path string) (Constraints, error) {
	cons := DefaultConstraints()
	if path == "" {
		return cons, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Constraints{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := unmarshalDocument(data, path, &cons); err != nil {
		return Constraints{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cons.validate(); err != nil {
		return Constraints{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cons, nil
}

func (c Constraints) validate() error {
	if c.MinAge < 0 {
		return fmt.Errorf("min_age must not be negative, got %d", c.MinAge)
	}
	if c.MaxAge < c.MinAge {
		return fmt.Errorf("max_age %d is below min_age %d", c.MaxAge, c.MinAge)
	}
	for employment, bounds := range c.MonthlyIncomeRanges {
		if bounds[1] < bounds[0] {
			return fmt.Errorf("income range for %q has high %v below low %v", employment, bounds[1], bounds[0])
		}
	}
	return nil
}

package generator

import (
	"math"
	"sort"
)

// Documented defaults; constraints override individual entries and anything
// unspecified falls back here.
var (
	DefaultEmploymentDistribution = map[string]float64{
		"Full-time":     0.60,
		"Part-time":     0.10,
		"Self-employed": 0.10,
		"Unemployed":    0.05,
		"Retired":       0.10,
		"Student":       0.05,
	}

	DefaultMonthlyIncomeRanges = map[string][2]float64{
		"Full-time":     {3000, 15000},
		"Part-time":     {800, 4000},
		"Self-employed": {2000, 20000},
		"Unemployed":    {0, 800},
		"Retired":       {0, 5000},
		"Student":       {0, 1500},
	}
)

// fallbackIncomeRange covers employment types with no configured or default
// range.
var fallbackIncomeRange = [2]float64{2000, 10000}

// triangularModeFraction places the distribution mode toward the low end of
// each income range.
const triangularModeFraction = 0.35

func (g *Generator) financials(country string) map[string]any {
	distribution := g.cons.EmploymentDistribution
	if len(distribution) == 0 {
		distribution = DefaultEmploymentDistribution
	}
	employment := g.weightedChoice(distribution)

	low, high := g.incomeRange(employment)
	monthly := round2(g.triangular(low, high))
	if employment == "Unemployed" || employment == "Student" {
		monthly = math.Max(0, monthly)
	}
	// Annualize with a small ±5% variance.
	annual := round2(monthly * 12 * (1 + (g.rng.Float64()*0.10 - 0.05)))

	currency := g.cons.Currency
	if currency == "" {
		if country == "SG" {
			currency = "SGD"
		} else {
			currency = "USD"
		}
	}

	return map[string]any{
		"employment_type": employment,
		"monthly_income":  monthly,
		"annual_income":   annual,
		"currency":        currency,
	}
}

func (g *Generator) incomeRange(employment string) (float64, float64) {
	if bounds, ok := g.cons.MonthlyIncomeRanges[employment]; ok {
		return bounds[0], bounds[1]
	}
	if bounds, ok := DefaultMonthlyIncomeRanges[employment]; ok {
		return bounds[0], bounds[1]
	}
	return fallbackIncomeRange[0], fallbackIncomeRange[1]
}

// weightedChoice samples a key proportionally to its weight. Negative
// weights count as zero, and an all-zero table degrades to a uniform pick so
// a misconfigured distribution cannot stall generation. Keys are visited in
// sorted order to keep seeded runs reproducible.
func (g *Generator) weightedChoice(weights map[string]float64) string {
	keys := make([]string, 0, len(weights))
	for key := range weights {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var total float64
	for _, key := range keys {
		total += math.Max(0, weights[key])
	}
	if total <= 0 {
		return keys[g.rng.Intn(len(keys))]
	}

	target := g.rng.Float64() * total
	var cumulative float64
	for _, key := range keys {
		cumulative += math.Max(0, weights[key])
		if target < cumulative {
			return key
		}
	}
	return keys[len(keys)-1]
}

// triangular samples a triangular distribution over [low, high] with the
// mode at low + triangularModeFraction*(high-low), by inverse transform.
func (g *Generator) triangular(low, high float64) float64 {
	if high <= low {
		return low
	}
	mode := low + triangularModeFraction*(high-low)
	u := g.rng.Float64()
	cut := (mode - low) / (high - low)
	if u < cut {
		return low + math.Sqrt(u*(high-low)*(mode-low))
	}
	return high - math.Sqrt((1-u)*(high-low)*(high-mode))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package query

import (
	"strings"

	"github.com/cuongbtq/jobboard/internal/domain"
)

// Range is a salary interval in a job's native currency
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// USDRange is a salary interval after conversion to US dollars
type USDRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RateSource converts a currency code into a USD multiplier
type RateSource interface {
	Rate(currency string) float64
}

// FixedRates is a static currency-to-USD multiplier table.
// The values approximate exchange rates and are not kept current.
type FixedRates map[string]float64

// Rate returns the multiplier for currency, or 1 when the code is unknown
func (r FixedRates) Rate(currency string) float64 {
	if rate, ok := r[strings.ToUpper(currency)]; ok {
		return rate
	}
	return 1
}

// DefaultRates returns the built-in multiplier table
func DefaultRates() FixedRates {
	return FixedRates{
		"USD": 1,
		"GHS": 0.08,
		"NGN": 0.0007,
		"ZAR": 0.055,
		"EUR": 1.09,
		"GBP": 1.27,
	}
}

// SalaryRange returns the lowest salary.min and highest salary.max across jobs, without
// currency normalisation. The zero Range is returned for an empty input.
func SalaryRange(jobs []domain.Job) Range {
	if len(jobs) == 0 {
		return Range{}
	}
	r := Range{Min: jobs[0].Salary.Min, Max: jobs[0].Salary.Max}
	for i := range jobs[1:] {
		s := jobs[i+1].Salary
		r.Min = min(r.Min, s.Min)
		r.Max = max(r.Max, s.Max)
	}
	return r
}

// SalaryRangeUSD is SalaryRange with every bound converted through rates first
func SalaryRangeUSD(jobs []domain.Job, rates RateSource) USDRange {
	if len(jobs) == 0 {
		return USDRange{}
	}
	if rates == nil {
		rates = DefaultRates()
	}

	var r USDRange
	for i := range jobs {
		s := jobs[i].Salary
		rate := rates.Rate(s.Currency)
		lo, hi := float64(s.Min)*rate, float64(s.Max)*rate
		if i == 0 {
			r = USDRange{Min: lo, Max: hi}
			continue
		}
		r.Min = min(r.Min, lo)
		r.Max = max(r.Max, hi)
	}
	return r
}

// Preset is a quick-filter salary band
type Preset struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// Unbounded reports whether Max is the ceiling sentinel rather than a real limit
func (p Preset) Unbounded(ceiling int) bool {
	return p.Max >= ceiling
}

// PresetSalaryRanges returns the fixed bands using DefaultPresetCeiling
func PresetSalaryRanges() []Preset {
	return PresetSalaryRangesWithCeiling(DefaultPresetCeiling)
}

// PresetSalaryRangesWithCeiling returns the fixed bands; the last band ends at ceiling
func PresetSalaryRangesWithCeiling(ceiling int) []Preset {
	return []Preset{
		{Label: "Under $2K", Min: 0, Max: 2000},
		{Label: "$2K - $5K", Min: 2000, Max: 5000},
		{Label: "$5K - $10K", Min: 5000, Max: 10000},
		{Label: "$10K - $20K", Min: 10000, Max: 20000},
		{Label: "$20K+", Min: 20000, Max: ceiling},
	}
}

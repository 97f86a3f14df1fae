package query

import (
	"testing"

	"github.com/cuongbtq/jobboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSalaryRange(t *testing.T) {
	assert.Equal(t, Range{Min: 6000, Max: 22000}, SalaryRange(sampleJobs()))
	assert.Equal(t, Range{}, SalaryRange(nil))
}

func TestSalaryRangeUSD(t *testing.T) {
	got := SalaryRangeUSD(sampleJobs(), DefaultRates())

	// NGN 12000 * 0.0007 is the lowest converted bound, USD 12000 the highest
	assert.InDelta(t, 8.4, got.Min, 1e-9)
	assert.InDelta(t, 12000, got.Max, 1e-9)

	assert.Equal(t, USDRange{}, SalaryRangeUSD(nil, DefaultRates()))
}

func TestSalaryRangeUSD_UnknownCurrencyCountsAsUSD(t *testing.T) {
	jobs := []domain.Job{job("a", "T", "C", "2025-01-01", func(j *domain.Job) {
		j.Salary = domain.Salary{Min: 100, Max: 300, Currency: "XYZ", Period: "month"}
	})}

	assert.Equal(t, USDRange{Min: 100, Max: 300}, SalaryRangeUSD(jobs, DefaultRates()))
	assert.Equal(t, USDRange{Min: 100, Max: 300}, SalaryRangeUSD(jobs, nil))
}

type doubleRates struct{}

func (doubleRates) Rate(string) float64 { return 2 }

func TestSalaryRangeUSD_InjectedRates(t *testing.T) {
	got := SalaryRangeUSD(sampleJobs(), doubleRates{})
	assert.Equal(t, USDRange{Min: 12000, Max: 44000}, got)
}

func TestFixedRates(t *testing.T) {
	rates := DefaultRates()

	assert.Equal(t, 1.0, rates.Rate("USD"))
	assert.Equal(t, 0.08, rates.Rate("GHS"))
	assert.Equal(t, 0.08, rates.Rate("ghs"))
	assert.Equal(t, 1.27, rates.Rate("GBP"))
	assert.Equal(t, 1.0, rates.Rate("JPY"))
}

func TestPresetSalaryRanges(t *testing.T) {
	presets := PresetSalaryRanges()

	labels := make([]string, len(presets))
	for i, p := range presets {
		labels[i] = p.Label
	}
	assert.Equal(t, []string{"Under $2K", "$2K - $5K", "$5K - $10K", "$10K - $20K", "$20K+"}, labels)

	last := presets[len(presets)-1]
	assert.Equal(t, DefaultPresetCeiling, last.Max)
	assert.True(t, last.Unbounded(DefaultPresetCeiling))
	assert.False(t, presets[0].Unbounded(DefaultPresetCeiling))

	for i := 1; i < len(presets); i++ {
		assert.Equal(t, presets[i-1].Max, presets[i].Min, "bands must be contiguous")
	}
}

func TestPresetSalaryRangesWithCeiling(t *testing.T) {
	presets := PresetSalaryRangesWithCeiling(50000)
	assert.Equal(t, 50000, presets[len(presets)-1].Max)
}

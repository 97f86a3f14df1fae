package query

const (
	// DefaultDescriptionWindow is how many leading description characters Search inspects
	DefaultDescriptionWindow = 200

	// DefaultPresetCeiling stands in for "no upper bound" on the open-ended preset band
	DefaultPresetCeiling = 999999

	// DefaultPerPage is the page size used when a request leaves it unset
	DefaultPerPage = 12
)

// Options holds the tunable constants of the pipeline
type Options struct {
	DescriptionWindow int
	PresetCeiling     int
	PerPage           int
	MaxPerPage        int
	Rates             RateSource
}

// DefaultOptions returns the values the job board ships with
func DefaultOptions() Options {
	return Options{
		DescriptionWindow: DefaultDescriptionWindow,
		PresetCeiling:     DefaultPresetCeiling,
		PerPage:           DefaultPerPage,
		MaxPerPage:        100,
		Rates:             DefaultRates(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DescriptionWindow <= 0 {
		o.DescriptionWindow = d.DescriptionWindow
	}
	if o.PresetCeiling <= 0 {
		o.PresetCeiling = d.PresetCeiling
	}
	if o.PerPage <= 0 {
		o.PerPage = d.PerPage
	}
	if o.MaxPerPage <= 0 {
		o.MaxPerPage = d.MaxPerPage
	}
	if o.Rates == nil {
		o.Rates = d.Rates
	}
	return o
}

package query

import "github.com/cuongbtq/jobboard/internal/domain"

// Request is everything a view supplies to compute its visible list
type Request struct {
	Text      string
	Criteria  domain.Criteria
	Sort      SortKey
	Direction Direction
	Page      int
	PerPage   int
}

// Engine runs the search, filter, sort, paginate pipeline with a fixed set of options
type Engine struct {
	opts Options
}

// NewEngine creates an Engine; zero-valued options fall back to their defaults
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.opts
}

// Normalize fills request defaults and clamps the page size
func (e *Engine) Normalize(req Request) Request {
	if req.Sort == "" {
		req.Sort = SortPostedAt
	}
	if req.Direction == "" {
		req.Direction = Desc
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PerPage <= 0 {
		req.PerPage = e.opts.PerPage
	}
	if req.PerPage > e.opts.MaxPerPage {
		req.PerPage = e.opts.MaxPerPage
	}
	return req
}

// Run applies search, filter, sort and paginate in that order. jobs is not modified.
func (e *Engine) Run(jobs []domain.Job, req Request) Page {
	req = e.Normalize(req)

	result := SearchWithin(jobs, req.Text, e.opts.DescriptionWindow)
	if !req.Criteria.IsEmpty() {
		result = Filter(result, req.Criteria)
	}
	result = Sort(result, req.Sort, req.Direction)

	return Paginate(result, req.Page, req.PerPage)
}

// Facets builds filter option lists and salary bounds for jobs
func (e *Engine) Facets(jobs []domain.Job) Facets {
	return Facets{
		Types:          UniqueValues(jobs, FieldType),
		Locations:      UniqueValues(jobs, FieldLocation),
		Experiences:    UniqueValues(jobs, FieldExperience),
		SalaryRange:    SalaryRange(jobs),
		SalaryRangeUSD: SalaryRangeUSD(jobs, e.opts.Rates),
		Presets:        PresetSalaryRangesWithCeiling(e.opts.PresetCeiling),
		PresetCeiling:  e.opts.PresetCeiling,
	}
}

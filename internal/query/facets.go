package query

import (
	"fmt"
	"slices"

	"github.com/cuongbtq/jobboard/internal/domain"
)

// Field names a string-valued job field that can feed a filter option list
type Field string

const (
	FieldType       Field = "type"
	FieldLocation   Field = "location"
	FieldExperience Field = "experience"
	FieldCompany    Field = "company"
	FieldTitle      Field = "title"
	FieldCurrency   Field = "currency"
	FieldPeriod     Field = "period"
)

var fieldGetters = map[Field]func(*domain.Job) string{
	FieldType:       func(j *domain.Job) string { return j.Type },
	FieldLocation:   func(j *domain.Job) string { return j.Location },
	FieldExperience: func(j *domain.Job) string { return j.Experience },
	FieldCompany:    func(j *domain.Job) string { return j.Company },
	FieldTitle:      func(j *domain.Job) string { return j.Title },
	FieldCurrency:   func(j *domain.Job) string { return j.Salary.Currency },
	FieldPeriod:     func(j *domain.Job) string { return j.Salary.Period },
}

// ParseField maps a request value onto a Field
func ParseField(s string) (Field, error) {
	f := Field(s)
	if _, ok := fieldGetters[f]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidField, s)
	}
	return f, nil
}

// UniqueValues returns the distinct non-empty values of field, sorted lexicographically.
// Unknown fields yield an empty list.
func UniqueValues(jobs []domain.Job, field Field) []string {
	get, ok := fieldGetters[field]
	if !ok {
		return []string{}
	}

	seen := make(map[string]struct{}, len(jobs))
	out := make([]string, 0)
	for i := range jobs {
		v := get(&jobs[i])
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Facets are the option lists and bounds a filter form is built from
type Facets struct {
	Types          []string `json:"types"`
	Locations      []string `json:"locations"`
	Experiences    []string `json:"experiences"`
	SalaryRange    Range    `json:"salaryRange"`
	SalaryRangeUSD USDRange `json:"salaryRangeUSD"`
	Presets        []Preset `json:"presets"`
	PresetCeiling  int      `json:"presetCeiling"`
}

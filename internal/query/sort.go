package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/cuongbtq/jobboard/internal/domain"
)

// SortKey selects the field jobs are ordered by
type SortKey string

const (
	SortPostedAt   SortKey = "postedAt"
	SortSalary     SortKey = "salary"
	SortTitle      SortKey = "title"
	SortCompany    SortKey = "company"
	SortLocation   SortKey = "location"
	SortType       SortKey = "type"
	SortExperience SortKey = "experience"
)

// Direction is the sort order
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type comparator func(a, b *domain.Job) int

var comparators = map[SortKey]comparator{
	SortPostedAt: func(a, b *domain.Job) int { return a.PostedAt.Compare(b.PostedAt.Time) },
	SortSalary:   func(a, b *domain.Job) int { return cmp.Compare(a.Salary.Max, b.Salary.Max) },
	SortTitle:    func(a, b *domain.Job) int { return strings.Compare(a.Title, b.Title) },
	SortCompany:  func(a, b *domain.Job) int { return strings.Compare(a.Company, b.Company) },
	SortLocation: func(a, b *domain.Job) int { return strings.Compare(a.Location, b.Location) },
	SortType:     func(a, b *domain.Job) int { return strings.Compare(a.Type, b.Type) },
	SortExperience: func(a, b *domain.Job) int {
		return strings.Compare(a.Experience, b.Experience)
	},
}

// SortKeys lists the supported keys
func SortKeys() []SortKey {
	return []SortKey{SortPostedAt, SortSalary, SortTitle, SortCompany, SortLocation, SortType, SortExperience}
}

// ParseSortKey maps a request value onto a SortKey. Empty selects SortPostedAt.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortPostedAt, nil
	}
	key := SortKey(s)
	if _, ok := comparators[key]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSortKey, s)
	}
	return key, nil
}

// ParseDirection maps a request value onto a Direction. Empty selects Desc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "":
		return Desc, nil
	case string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDirection, s)
	}
}

// Sort returns a new slice ordered by key. The sort is stable: ties keep input order.
// Unknown keys fall back to SortPostedAt and unknown directions to Desc.
func Sort(jobs []domain.Job, key SortKey, dir Direction) []domain.Job {
	compare, ok := comparators[key]
	if !ok {
		compare = comparators[SortPostedAt]
	}

	out := slices.Clone(jobs)
	if dir == Asc {
		slices.SortStableFunc(out, func(a, b domain.Job) int { return compare(&a, &b) })
	} else {
		slices.SortStableFunc(out, func(a, b domain.Job) int { return compare(&b, &a) })
	}
	return out
}

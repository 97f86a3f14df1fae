package domain

// Criteria is the optional multi-field job filter.
// A nil field places no constraint on the corresponding job field.
type Criteria struct {
	Type       *string `json:"type,omitempty"`
	Location   *string `json:"location,omitempty"`
	Remote     *bool   `json:"remote,omitempty"`
	SalaryMin  *int    `json:"salaryMin,omitempty"`
	SalaryMax  *int    `json:"salaryMax,omitempty"`
	Experience *string `json:"experience,omitempty"`
}

// IsEmpty reports whether no field is constrained
func (c Criteria) IsEmpty() bool {
	return c.Type == nil && c.Location == nil && c.Remote == nil &&
		c.SalaryMin == nil && c.SalaryMax == nil && c.Experience == nil
}

// Matches reports whether the job satisfies every present field
func (c Criteria) Matches(job *Job) bool {
	if c.Type != nil && job.Type != *c.Type {
		return false
	}
	if c.Location != nil && job.Location != *c.Location {
		return false
	}
	if c.Remote != nil && job.Remote != *c.Remote {
		return false
	}
	if c.SalaryMin != nil && job.Salary.Max < *c.SalaryMin {
		return false
	}
	if c.SalaryMax != nil && job.Salary.Min > *c.SalaryMax {
		return false
	}
	if c.Experience != nil && job.Experience != *c.Experience {
		return false
	}
	return true
}

// Ptr returns a pointer to v, for building criteria literals
func Ptr[T any](v T) *T {
	return &v
}

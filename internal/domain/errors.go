package domain

import "errors"

var (
	// ErrJobNotFound is returned when no job carries the requested id
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidJob is returned when a record fails load-time validation
	ErrInvalidJob = errors.New("invalid job record")

	// ErrDuplicateJobID is returned when two records share an id
	ErrDuplicateJobID = errors.New("duplicate job id")

	// ErrInvalidSortKey is returned for sort keys outside the supported set
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrInvalidDirection is returned for sort directions other than asc/desc
	ErrInvalidDirection = errors.New("invalid sort direction")

	// ErrInvalidField is returned for facet fields outside the supported set
	ErrInvalidField = errors.New("invalid field")
)

package query

import "github.com/cuongbtq/jobboard/internal/domain"

// Page is one window of a result list
type Page struct {
	Items      []domain.Job
	Total      int
	TotalPages int
	Page       int
	PerPage    int
}

// Paginate slices out the 1-indexed page. Pages outside [1, TotalPages] are empty.
// A non-positive perPage falls back to DefaultPerPage.
func Paginate(jobs []domain.Job, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total := len(jobs)
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	result := Page{
		Items:      []domain.Job{},
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}

	if page < 1 || page > result.TotalPages {
		return result
	}

	start := (page - 1) * perPage
	end := start + min(perPage, total-start)

	result.Items = jobs[start:end:end]
	return result
}

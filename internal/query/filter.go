package query

import "github.com/cuongbtq/jobboard/internal/domain"

// Filter keeps jobs satisfying every present criterion
func Filter(jobs []domain.Job, criteria domain.Criteria) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for i := range jobs {
		if criteria.Matches(&jobs[i]) {
			out = append(out, jobs[i])
		}
	}
	return out
}

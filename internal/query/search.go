package query

import (
	"strings"

	"github.com/cuongbtq/jobboard/internal/domain"
)

// Search keeps jobs whose title, company, any tag, or description prefix
// contains the query, case-insensitively. An empty or blank query returns jobs unchanged.
func Search(jobs []domain.Job, query string) []domain.Job {
	return SearchWithin(jobs, query, DefaultDescriptionWindow)
}

// SearchWithin is Search with an explicit description window, in characters
func SearchWithin(jobs []domain.Job, query string, window int) []domain.Job {
	term := normalizeTerm(query)
	if term == "" {
		return jobs
	}

	out := make([]domain.Job, 0, len(jobs))
	for i := range jobs {
		if matchesTerm(&jobs[i], term, window) {
			out = append(out, jobs[i])
		}
	}
	return out
}

func normalizeTerm(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func matchesTerm(job *domain.Job, term string, window int) bool {
	if strings.Contains(strings.ToLower(job.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(job.Company), term) {
		return true
	}
	for _, tag := range job.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return strings.Contains(prefix(strings.ToLower(job.Description), window), term)
}

// prefix returns the first n characters of s
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

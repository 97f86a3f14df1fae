package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cuongbtq/jobboard/internal/domain"
	"github.com/cuongbtq/jobboard/internal/format"
	"github.com/cuongbtq/jobboard/internal/query"
	"github.com/ecodeclub/ekit/slice"
)

// SummaryLength is how many description characters a list item carries
const SummaryLength = 150

// filterAll is the option value meaning "no constraint"
const filterAll = "all"

type ListJobsRequest struct {
	Q          string `form:"q"`
	Type       string `form:"type"`
	Location   string `form:"location"`
	Remote     string `form:"remote"`
	SalaryMin  *int   `form:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax  *int   `form:"salaryMax" binding:"omitempty,gte=0"`
	Experience string `form:"experience"`
	Page       int    `form:"page"`
	PerPage    int    `form:"perPage" binding:"omitempty,gte=1"`
	Sort       string `form:"sort"`
	Order      string `form:"order"`
}

// ToQuery converts the query string into a pipeline request
func (r *ListJobsRequest) ToQuery() (query.Request, error) {
	key, err := query.ParseSortKey(r.Sort)
	if err != nil {
		return query.Request{}, err
	}

	dir, err := query.ParseDirection(r.Order)
	if err != nil {
		return query.Request{}, err
	}

	criteria, err := r.criteria()
	if err != nil {
		return query.Request{}, err
	}

	return query.Request{
		Text:      r.Q,
		Criteria:  criteria,
		Sort:      key,
		Direction: dir,
		Page:      r.Page,
		PerPage:   r.PerPage,
	}, nil
}

func (r *ListJobsRequest) criteria() (domain.Criteria, error) {
	c := domain.Criteria{
		Type:       optional(r.Type),
		Location:   optional(r.Location),
		Experience: optional(r.Experience),
		SalaryMin:  r.SalaryMin,
		SalaryMax:  r.SalaryMax,
	}

	if remote := optional(r.Remote); remote != nil {
		v, err := strconv.ParseBool(*remote)
		if err != nil {
			return domain.Criteria{}, fmt.Errorf("invalid remote value %q: %w", *remote, err)
		}
		c.Remote = &v
	}

	return c, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, filterAll) {
		return nil
	}
	return &v
}

type JobDTO struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Company     string        `json:"company"`
	CompanyLogo string        `json:"companyLogo,omitempty"`
	Location    string        `json:"location"`
	Type        string        `json:"type"`
	Remote      bool          `json:"remote"`
	Experience  string        `json:"experience"`
	Salary      domain.Salary `json:"salary"`
	PostedAt    domain.Date   `json:"postedAt"`
	Tags        []string      `json:"tags"`
	Summary     string        `json:"summary"`
	Saved       bool          `json:"saved"`
	Display     DisplayDTO    `json:"display"`
}

// DisplayDTO carries preformatted strings for the card and detail views
type DisplayDTO struct {
	Salary        string `json:"salary"`
	SalaryCompact string `json:"salaryCompact"`
	Posted        string `json:"posted"`
	Type          string `json:"type"`
	Experience    string `json:"experience"`
}

type JobDetailDTO struct {
	JobDTO
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Benefits         []string `json:"benefits"`
}

type ListJobsResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	Total      int      `json:"total"`
	TotalPages int      `json:"totalPages"`
	Page       int      `json:"page"`
	PerPage    int      `json:"perPage"`
}

type SavedIDsResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

type SavedChangeResponse struct {
	JobID string `json:"jobId,omitempty"`
	Saved bool   `json:"saved"`
	Count int    `json:"count"`
}

// NewJobDTO maps a job onto a list item with display strings relative to now
func NewJobDTO(job domain.Job, saved bool, now time.Time) JobDTO {
	return JobDTO{
		ID:          job.ID,
		Title:       job.Title,
		Company:     job.Company,
		CompanyLogo: job.CompanyLogo,
		Location:    job.Location,
		Type:        job.Type,
		Remote:      job.Remote,
		Experience:  job.Experience,
		Salary:      job.Salary,
		PostedAt:    job.PostedAt,
		Tags:        job.Tags,
		Summary:     format.Truncate(job.Description, SummaryLength),
		Saved:       saved,
		Display: DisplayDTO{
			Salary:        format.SalaryRange(job.Salary.Min, job.Salary.Max, job.Salary.Currency, job.Salary.Period),
			SalaryCompact: format.Salary(job.Salary),
			Posted:        format.RelativeDate(job.PostedAt, now),
			Type:          format.CapitalizeFirst(job.Type),
			Experience:    format.CapitalizeFirst(job.Experience),
		},
	}
}

// NewJobDetailDTO maps a job onto the detail view
func NewJobDetailDTO(job domain.Job, saved bool, now time.Time) JobDetailDTO {
	return JobDetailDTO{
		JobDTO:           NewJobDTO(job, saved, now),
		Description:      job.Description,
		Responsibilities: job.Responsibilities,
		Requirements:     job.Requirements,
		Benefits:         job.Benefits,
	}
}

// NewListJobsResponse maps a result page, flagging the jobs whose id is in savedIDs
func NewListJobsResponse(page query.Page, savedIDs []string, now time.Time) ListJobsResponse {
	return ListJobsResponse{
		Jobs: slice.Map(page.Items, func(_ int, src domain.Job) JobDTO {
			return NewJobDTO(src, slice.Contains(savedIDs, src.ID), now)
		}),
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PerPage:    page.PerPage,
	}
}

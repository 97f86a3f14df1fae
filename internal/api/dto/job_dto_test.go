package dto

import (
	"testing"
	"time"

	"github.com/cuongbtq/jobboard/internal/domain"
	"github.com/cuongbtq/jobboard/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListJobsRequest_ToQuery(t *testing.T) {
	tests := []struct {
		name    string
		req     ListJobsRequest
		want    query.Request
		wantErr error
	}{
		{
			name: "empty request uses default order",
			req:  ListJobsRequest{},
			want: query.Request{Sort: query.SortPostedAt, Direction: query.Desc},
		},
		{
			name: "all means no constraint",
			req:  ListJobsRequest{Type: "all", Location: "ALL", Experience: " ", Remote: "all"},
			want: query.Request{Sort: query.SortPostedAt, Direction: query.Desc},
		},
		{
			name: "every field set",
			req: ListJobsRequest{
				Q:          "go",
				Type:       "Full-time",
				Location:   "Remote",
				Remote:     "true",
				SalaryMin:  domain.Ptr(1000),
				SalaryMax:  domain.Ptr(5000),
				Experience: "Senior",
				Page:       2,
				PerPage:    6,
				Sort:       "salary",
				Order:      "asc",
			},
			want: query.Request{
				Text: "go",
				Criteria: domain.Criteria{
					Type:       domain.Ptr("Full-time"),
					Location:   domain.Ptr("Remote"),
					Remote:     domain.Ptr(true),
					SalaryMin:  domain.Ptr(1000),
					SalaryMax:  domain.Ptr(5000),
					Experience: domain.Ptr("Senior"),
				},
				Sort:      query.SortSalary,
				Direction: query.Asc,
				Page:      2,
				PerPage:   6,
			},
		},
		{
			name: "remote false is a constraint",
			req:  ListJobsRequest{Remote: "false"},
			want: query.Request{
				Criteria:  domain.Criteria{Remote: domain.Ptr(false)},
				Sort:      query.SortPostedAt,
				Direction: query.Desc,
			},
		},
		{
			name:    "unknown sort key",
			req:     ListJobsRequest{Sort: "popularity"},
			wantErr: domain.ErrInvalidSortKey,
		},
		{
			name:    "unknown direction",
			req:     ListJobsRequest{Order: "sideways"},
			wantErr: domain.ErrInvalidDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.ToQuery()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListJobsRequest_ToQuery_InvalidRemote(t *testing.T) {
	req := ListJobsRequest{Remote: "maybe"}

	_, err := req.ToQuery()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid remote value")
}

func TestNewListJobsResponse(t *testing.T) {
	now := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	jobs := []domain.Job{
		{
			ID:          "jb_1",
			Title:       "Backend Engineer",
			Type:        "full-time",
			Experience:  "senior",
			Description: "Build services",
			Salary:      domain.Salary{Min: 100000, Max: 150000, Currency: "USD", Period: "year"},
			PostedAt:    domain.MustParseDate("2025-01-18"),
		},
		{ID: "jb_2", Title: "Designer", PostedAt: domain.MustParseDate("2025-01-20")},
	}

	resp := NewListJobsResponse(query.Page{
		Items:      jobs,
		Total:      7,
		TotalPages: 4,
		Page:       1,
		PerPage:    2,
	}, []string{"jb_2", "jb_9"}, now)

	require.Len(t, resp.Jobs, 2)
	assert.Equal(t, 7, resp.Total)
	assert.Equal(t, 4, resp.TotalPages)
	assert.False(t, resp.Jobs[0].Saved)
	assert.True(t, resp.Jobs[1].Saved)

	first := resp.Jobs[0]
	assert.Equal(t, "Build services", first.Summary)
	assert.Equal(t, "Yesterday", first.Display.Posted)
	assert.Equal(t, "Full-time", first.Display.Type)
	assert.Equal(t, "Senior", first.Display.Experience)
	assert.Equal(t, "Today", resp.Jobs[1].Display.Posted)
}

func TestNewListJobsResponse_EmptyPage(t *testing.T) {
	resp := NewListJobsResponse(query.Page{Page: 3, PerPage: 12}, nil, time.Now())

	assert.NotNil(t, resp.Jobs)
	assert.Empty(t, resp.Jobs)
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJob() Job {
	return Job{
		ID:       "jb_0001",
		Title:    "Frontend Developer",
		Company:  "Acme Labs",
		Location: "Accra, GH",
		Type:     "Full-time",
		Remote:   true,
		Salary: Salary{
			Min:      6000,
			Max:      9000,
			Currency: "GHS",
			Period:   "month",
		},
		Experience: "Junior",
		PostedAt:   MustParseDate("2025-01-18"),
		Tags:       []string{"React", "TypeScript"},
	}
}

func TestJob_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(j *Job)
		wantErr bool
	}{
		{
			name:    "valid job",
			mutate:  func(j *Job) {},
			wantErr: false,
		},
		{
			name:    "missing id",
			mutate:  func(j *Job) { j.ID = "" },
			wantErr: true,
		},
		{
			name:    "missing title",
			mutate:  func(j *Job) { j.Title = "" },
			wantErr: true,
		},
		{
			name:    "salary min above max",
			mutate:  func(j *Job) { j.Salary.Min = 10000 },
			wantErr: true,
		},
		{
			name:    "equal salary bounds",
			mutate:  func(j *Job) { j.Salary.Min = 9000 },
			wantErr: false,
		},
		{
			name:    "negative salary",
			mutate:  func(j *Job) { j.Salary.Min = -1 },
			wantErr: true,
		},
		{
			name:    "currency too long",
			mutate:  func(j *Job) { j.Salary.Currency = "GHSS" },
			wantErr: true,
		},
		{
			name:    "lower case currency",
			mutate:  func(j *Job) { j.Salary.Currency = "usd" },
			wantErr: true,
		},
		{
			name:    "missing period",
			mutate:  func(j *Job) { j.Salary.Period = "" },
			wantErr: true,
		},
		{
			name:    "missing posted date",
			mutate:  func(j *Job) { j.PostedAt = Date{} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := validJob()
			tt.mutate(&job)

			err := job.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidJob)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	t.Run("calendar date", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2025-01-17"`), &d))
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, 17, d.Day())

		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2025-01-17"`, string(out))
	})

	t.Run("timestamp is truncated to its date on output", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2025-01-17T10:30:00Z"`), &d))
		assert.Equal(t, "2025-01-17", d.String())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	})

	t.Run("empty leaves zero date", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())
	})
}

func TestCriteria_Matches(t *testing.T) {
	job := validJob()

	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{name: "empty criteria", criteria: Criteria{}, want: true},
		{name: "matching type", criteria: Criteria{Type: Ptr("Full-time")}, want: true},
		{name: "type is case sensitive", criteria: Criteria{Type: Ptr("full-time")}, want: false},
		{name: "location mismatch", criteria: Criteria{Location: Ptr("Lagos, NG")}, want: false},
		{name: "remote true", criteria: Criteria{Remote: Ptr(true)}, want: true},
		{name: "remote false", criteria: Criteria{Remote: Ptr(false)}, want: false},
		{name: "salary floor reached by max", criteria: Criteria{SalaryMin: Ptr(9000)}, want: true},
		{name: "salary floor above max", criteria: Criteria{SalaryMin: Ptr(9001)}, want: false},
		{name: "salary ceiling at min", criteria: Criteria{SalaryMax: Ptr(6000)}, want: true},
		{name: "salary ceiling below min", criteria: Criteria{SalaryMax: Ptr(5999)}, want: false},
		{name: "zero floor still constrains", criteria: Criteria{SalaryMin: Ptr(0)}, want: true},
		{name: "experience and remote", criteria: Criteria{Experience: Ptr("Junior"), Remote: Ptr(true)}, want: true},
		{name: "one failing field fails all", criteria: Criteria{Experience: Ptr("Senior"), Remote: Ptr(true)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.Matches(&job))
		})
	}
}

func TestCriteria_IsEmpty(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.False(t, Criteria{Remote: Ptr(false)}.IsEmpty())
}

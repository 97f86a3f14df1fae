package query

import (
	"testing"

	"github.com/cuongbtq/jobboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		dir  Direction
		want []string
	}{
		{
			name: "newest first",
			key:  SortPostedAt,
			dir:  Desc,
			want: []string{"jb_0001", "jb_0002", "jb_0003", "jb_0004", "jb_0005"},
		},
		{
			name: "oldest first",
			key:  SortPostedAt,
			dir:  Asc,
			want: []string{"jb_0005", "jb_0004", "jb_0003", "jb_0002", "jb_0001"},
		},
		{
			name: "salary uses max, highest first",
			key:  SortSalary,
			dir:  Desc,
			want: []string{"jb_0005", "jb_0002", "jb_0003", "jb_0004", "jb_0001"},
		},
		{
			name: "title ascending",
			key:  SortTitle,
			dir:  Asc,
			want: []string{"jb_0005", "jb_0004", "jb_0001", "jb_0002", "jb_0003"},
		},
		{
			name: "company descending",
			key:  SortCompany,
			dir:  Desc,
			want: []string{"jb_0002", "jb_0003", "jb_0004", "jb_0005", "jb_0001"},
		},
		{
			name: "unknown key falls back to posted date",
			key:  SortKey("companyLogo"),
			dir:  Desc,
			want: []string{"jb_0001", "jb_0002", "jb_0003", "jb_0004", "jb_0005"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(shuffled(), tt.key, tt.dir)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := shuffled()
	before := ids(in)

	_ = Sort(in, SortPostedAt, Asc)

	assert.Equal(t, before, ids(in))
}

func TestSort_StableOnTies(t *testing.T) {
	in := []domain.Job{
		job("c", "C", "X", "2025-01-01"),
		job("a", "A", "X", "2025-01-02"),
		job("b", "B", "X", "2025-01-01"),
		job("d", "D", "X", "2025-01-02"),
	}

	assert.Equal(t, []string{"a", "d", "c", "b"}, ids(Sort(in, SortPostedAt, Desc)))
	assert.Equal(t, []string{"c", "b", "a", "d"}, ids(Sort(in, SortPostedAt, Asc)))
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(Sort(in, SortCompany, Asc)))
}

func TestSort_PostedAtDescIsMonotonic(t *testing.T) {
	got := Sort(shuffled(), SortPostedAt, Desc)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i-1].PostedAt.Before(got[i].PostedAt.Time),
			"%s posted before %s", got[i-1].ID, got[i].ID)
	}
}

func TestParseSortKey(t *testing.T) {
	for _, k := range SortKeys() {
		got, err := ParseSortKey(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortPostedAt, got)

	_, err = ParseSortKey("description")
	assert.ErrorIs(t, err, domain.ErrInvalidSortKey)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "", want: Desc},
		{in: "asc", want: Asc},
		{in: "DESC", want: Desc},
		{in: "up", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidDirection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

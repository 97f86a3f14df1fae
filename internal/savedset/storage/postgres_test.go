package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cuongbtq/jobboard/internal/savedset"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestPostgres_Load(t *testing.T) {
	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    []string
		wantErr error
		errText string
	}{
		{
			name: "stored set",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT ids FROM saved_sets WHERE name = .*").
					WithArgs("savedJobs").
					WillReturnRows(sqlmock.NewRows([]string{"ids"}).AddRow(`["jb_0001","jb_0002"]`))
			},
			want: []string{"jb_0001", "jb_0002"},
		},
		{
			name: "no row",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT ids FROM saved_sets WHERE name = .*").
					WithArgs("savedJobs").
					WillReturnRows(sqlmock.NewRows([]string{"ids"}))
			},
			wantErr: savedset.ErrNotFound,
		},
		{
			name: "corrupt value",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT ids FROM saved_sets WHERE name = .*").
					WithArgs("savedJobs").
					WillReturnRows(sqlmock.NewRows([]string{"ids"}).AddRow(`oops`))
			},
			wantErr: savedset.ErrCorrupt,
		},
		{
			name: "database error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT ids FROM saved_sets WHERE name = .*").
					WithArgs("savedJobs").
					WillReturnError(errors.New("connection refused"))
			},
			errText: "failed to get saved set: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.mock(mock)

			got, err := NewPostgres(db, "").Load(context.Background())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				assert.EqualError(t, err, tt.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgres_Save(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "upsert",
			ids:  []string{"jb_0003"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO saved_sets .* ON CONFLICT \\(name\\) DO UPDATE .*").
					WithArgs("bookmarks", `["jb_0003"]`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "empty set",
			ids:  nil,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO saved_sets .*").
					WithArgs("bookmarks", `[]`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "database error",
			ids:  []string{"jb_0003"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO saved_sets .*").
					WillReturnError(errors.New("read-only transaction"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.mock(mock)

			err := NewPostgres(db, "bookmarks").Save(context.Background(), tt.ids)

			if tt.wantErr {
				assert.ErrorContains(t, err, "failed to upsert saved set")
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMigrations(t *testing.T) {
	require.NotEmpty(t, Migrations)
	for i, m := range Migrations {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.Name)
	}
	assert.Contains(t, Migrations[0].SQL, "CREATE TABLE IF NOT EXISTS saved_sets")
}

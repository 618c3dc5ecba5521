package jobs

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kongenga/kongenga/internal/common"
	"github.com/kongenga/kongenga/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var jobCols = []string{"id", "title", "sector_id", "description", "education", "salary_min",
	"salary_max", "salary_currency", "hiring_rate", "growth_projection", "skills", "company_ids",
	"training_ids", "requirements", "work_environment", "career_path", "is_active",
	"created_at", "updated_at"}

func jobRow(rows *sqlmock.Rows, id, sector string) *sqlmock.Rows {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return rows.AddRow(id, []byte(`{"fr":"`+id+`"}`), sector, []byte(`{}`), []byte(`["Licence"]`),
		800, 1500, "USD", 85.0, "", []byte(`["Go","SQL"]`), []byte(`["vodacom"]`), []byte(`[]`),
		[]byte(`{}`), []byte(`{}`), []byte(`{}`), true, now, now)
}

func TestList_NoFilter(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+jobs\s+WHERE\s+is_active\s+ORDER\s+BY\s+created_at,\s*id\s+OFFSET\s+\$1\s+LIMIT\s+\$2$`).
		WithArgs(0, 20).
		WillReturnRows(jobRow(jobRow(sqlmock.NewRows(jobCols), "nurse", "health"), "dev", "tech"))

	got, err := repo.List(context.Background(), models.JobFilter{Limit: 20})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.StringList{"Go", "SQL"}, got[0].Skills)
	assert.Equal(t, "tech", got[1].SectorID)
}

func TestList_SectorAndSearch(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)WHERE\s+is_active\s+AND\s+sector_id\s*=\s*\$1\s+AND\s+\(title::text\s+ILIKE\s+\$2\s+OR\s+skills::text\s+ILIKE\s+\$2\).*OFFSET\s+\$3$`).
		WithArgs("tech", "%dev%", 10).
		WillReturnRows(sqlmock.NewRows(jobCols))

	got, err := repo.List(context.Background(), models.JobFilter{SectorID: "tech", Search: "dev", Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE\s+id\s*=\s*\$1\s+AND\s+is_active$`).WithArgs("x").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "x")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListByIDs_PreservesOrder(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`jsonb_array_elements_text\(\$1::jsonb\)`).
		WithArgs([]byte(`["dev","gone","nurse"]`)).
		WillReturnRows(jobRow(jobRow(sqlmock.NewRows(jobCols), "nurse", "health"), "dev", "tech"))

	got, err := repo.ListByIDs(context.Background(), []string{"dev", "gone", "nurse"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dev", got[0].ID)
	assert.Equal(t, "nurse", got[1].ID)
}

func TestListByIDs_EmptySkipsQuery(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	got, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownSector(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+jobs`).WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), &models.Job{ID: "dev", SectorID: "nope"})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+jobs`).WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &models.Job{ID: "dev", SectorID: "tech"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^UPDATE\s+jobs\s+SET.*WHERE\s+id\s*=\s*\$1\s+AND\s+is_active`).
		WillReturnError(sql.ErrNoRows)

	err := repo.Update(context.Background(), &models.Job{ID: "dev"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSoftDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^UPDATE\s+jobs\s+SET\s+is_active\s*=\s*FALSE`).
		WithArgs("dev").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^UPDATE\s+jobs\s+SET\s+is_active\s*=\s*FALSE`).
		WithArgs("dev").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SoftDelete(context.Background(), "dev"))
	require.ErrorIs(t, repo.SoftDelete(context.Background(), "dev"), common.ErrorNotFound)
}

func TestCountActive_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT\s+count\(\*\)\s+FROM\s+jobs`).WillReturnError(errors.New("boom"))

	_, err := repo.CountActive(context.Background())
	require.Error(t, err)
}

func TestSectorStats(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)LEFT\s+JOIN\s+jobs\s+j.*GROUP\s+BY`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "growth", "count"}).
			AddRow("health", []byte(`{"fr":"Santé"}`), 12.5, 4))

	got, err := repo.SectorStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.SectorStat{{SectorID: "health", Name: models.LocalizedText{"fr": "Santé"}, Growth: 12.5, JobCount: 4}}, got)
}

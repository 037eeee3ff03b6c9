package persistence

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (*Postgres, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgres(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func TestPostgresMigrateCreatesAllTables(t *testing.T) {
	adapter, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	for range tableFor {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, adapter.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateUpserts(t *testing.T) {
	adapter, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO courses").
		WithArgs("CS101", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.Create(context.Background(), KindCourses, "CS101", map[string]string{"id": "CS101"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateUsesSameUpsert(t *testing.T) {
	adapter, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO participants").
		WithArgs("ST001", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.Update(context.Background(), KindParticipants, "ST001", map[string]string{"id": "ST001"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDelete(t *testing.T) {
	adapter, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM programs WHERE key").
		WithArgs("Physics").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.Delete(context.Background(), KindPrograms, "Physics"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUnknownKind(t *testing.T) {
	adapter, _, cleanup := newPostgresMock(t)
	defer cleanup()

	err := adapter.Create(context.Background(), Kind("rooms"), "t1", nil)
	require.Error(t, err)
	err = adapter.Delete(context.Background(), Kind("rooms"), "t1")
	require.Error(t, err)
}

func TestPostgresSurfacesExecError(t *testing.T) {
	adapter, mock, cleanup := newPostgresMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO courses").
		WillReturnError(errors.New("connection reset"))

	err := adapter.Create(context.Background(), KindCourses, "CS101", map[string]string{"id": "CS101"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

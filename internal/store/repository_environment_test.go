package store

import (
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/models"
)

var environmentColumns = []string{"id", "name", "external_path", "variables"}

func TestListEnvironments(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEnvironmentRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(listEnvironments)).
		WillReturnRows(sqlmock.NewRows(environmentColumns).
			AddRow("e1", "dev", "vault/dev", `[{"key":"host","value":"localhost"}]`).
			AddRow("e2", "prod", "", `[]`))

	envs, err := repo.ListEnvironments(testContext())
	require.NoError(t, err)
	require.Len(t, envs, 2)
	assert.Equal(t, models.Environment{
		ID: "e1", Name: "dev", ExternalPath: "vault/dev",
		Variables: []models.KeyValue{{Key: "host", Value: "localhost"}},
	}, envs[0])
	assert.Nil(t, envs[1].Variables)
}

func TestGetEnvironment_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEnvironmentRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(getEnvironment)).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(environmentColumns))

	_, err := repo.GetEnvironment(testContext(), "nope")
	assert.ErrorIs(t, err, ErrEnvironmentNotFound)
}

func TestSaveEnvironment(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEnvironmentRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO environments")).
		WithArgs("e1", "dev", "vault/dev", "[]").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveEnvironment(testContext(), models.Environment{ID: "e1", Name: "dev", ExternalPath: "vault/dev"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEnvironment_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEnvironmentRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(deleteEnvironment)).
		WithArgs("e1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteEnvironment(testContext(), "e1"), ErrEnvironmentNotFound)
}

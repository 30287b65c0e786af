package counter

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return NewRepository(db), mock
}

func TestGetNextValue(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO company_counters")).
		WithArgs("company-1", "payroll_run:202603").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(7)))

	got, err := repo.GetNextValue(context.Background(), "company-1", "payroll_run:202603")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNextValue_Error(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO company_counters")).
		WillReturnError(errors.New("deadlock detected"))

	_, err := repo.GetNextValue(context.Background(), "company-1", "payroll_run")
	assert.EqualError(t, err, "next payroll_run counter: deadlock detected")
}

func TestScopedTypeAndFormat(t *testing.T) {
	assert.Equal(t, "payroll_run:202603", ScopedType("payroll_run", "202603"))
	assert.Equal(t, "payroll_run", ScopedType("payroll_run", ""))
	assert.Equal(t, "PR-202603-000042", FormatNumber("PR", "202603", 42))
}

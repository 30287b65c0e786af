package tenant

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

func TestScopes(t *testing.T) {
	db := dryRunDB(t)

	tests := []struct {
		name  string
		query func(db *gorm.DB) *gorm.DB
		sql   string
	}{
		{
			name: "scope",
			query: func(db *gorm.DB) *gorm.DB {
				return db.Table("payroll_runs").Scopes(Scope("c1"))
			},
			sql: `SELECT * FROM "payroll_runs" WHERE company_id = $1`,
		},
		{
			name: "scope table",
			query: func(db *gorm.DB) *gorm.DB {
				return db.Table("employee_salaries").
					Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
					Scopes(ScopeTable("employees", "c1"))
			},
			sql: `SELECT * FROM "employee_salaries" JOIN employees ON employees.id = employee_salaries.employee_id WHERE employees.company_id = $1`,
		},
		{
			name: "employees of",
			query: func(db *gorm.DB) *gorm.DB {
				return db.Table("pay_components").Scopes(EmployeesOf("c1"))
			},
			sql: `SELECT * FROM "pay_components" WHERE employee_id IN (SELECT id FROM "employees" WHERE company_id = $1)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []map[string]any
			stmt := tt.query(db).Find(&rows).Statement

			assert.Equal(t, tt.sql, stmt.SQL.String())
			assert.Equal(t, []any{"c1"}, stmt.Vars)
		})
	}
}

package tenant

import "gorm.io/gorm"

// Scope restricts a query on a table that carries company_id.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ScopeTable is Scope for a joined query where company_id is ambiguous.
func ScopeTable(table, companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".company_id = ?", companyID)
	}
}

// EmployeesOf restricts a table keyed by employee_id to the company's
// employees.
func EmployeesOf(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Table("employees").
			Select("id").
			Where("company_id = ?", companyID)
		return db.Where("employee_id IN (?)", sub)
	}
}

package compensation

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=compensation_repo.go -destination=mock/compensation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindEmployeeByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error)
	FindEmployeesForPeriod(ctx context.Context, companyID string, departmentID *uuid.UUID, start, end time.Time) ([]Employee, error)

	CreateSalary(ctx context.Context, salary *Salary) error
	FindSalariesByCompany(ctx context.Context, companyID string) ([]Salary, error)
	FindSalaryByIDAndCompany(ctx context.Context, companyID, id string) (*Salary, error)
	FindSalariesInForce(ctx context.Context, employeeIDs []uuid.UUID, asOf time.Time) ([]Salary, error)
	DeleteSalary(ctx context.Context, companyID, id string) error

	CreateComponent(ctx context.Context, component *PayComponent) error
	FindComponentsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]PayComponent, error)
	FindComponentsForPeriod(ctx context.Context, employeeIDs []uuid.UUID, start, end time.Time) ([]PayComponent, error)

	CreateSuspension(ctx context.Context, suspension *Suspension) error
	FindSuspensionsForPeriod(ctx context.Context, employeeIDs []uuid.UUID, start, end time.Time) ([]Suspension, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) FindEmployeeByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	var employee Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindEmployeesForPeriod returns employees hired on or before end and not
// terminated before start, ordered by id.
func (r *repository) FindEmployeesForPeriod(ctx context.Context, companyID string, departmentID *uuid.UUID, start, end time.Time) ([]Employee, error) {
	var employees []Employee
	q := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("hire_date <= ?", end).
		Where("termination_date IS NULL OR termination_date >= ?", start)
	if departmentID != nil {
		q = q.Where("department_id = ?", *departmentID)
	}
	err := q.Order("id").Find(&employees).Error
	return employees, err
}

func (r *repository) CreateSalary(ctx context.Context, salary *Salary) error {
	return r.conn(ctx).Create(salary).Error
}

func (r *repository) FindSalariesByCompany(ctx context.Context, companyID string) ([]Salary, error) {
	var salaries []Salary
	query := `
SELECT
	employee_salaries.*,
	employees.full_name AS employee_name
FROM employee_salaries
JOIN employees ON employees.id = employee_salaries.employee_id
WHERE employees.company_id = ?
ORDER BY
	employees.full_name ASC,
	employee_salaries.effective_date DESC,
	employee_salaries.created_at DESC
`

	err := r.conn(ctx).Raw(query, companyID).Scan(&salaries).Error
	return salaries, err
}

func (r *repository) FindSalaryByIDAndCompany(ctx context.Context, companyID, id string) (*Salary, error) {
	var salary Salary
	err := r.conn(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.id = ?", id).
		Scopes(tenant.ScopeTable("employees", companyID)).
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

// FindSalariesInForce picks, per employee, the newest row effective on asOf.
func (r *repository) FindSalariesInForce(ctx context.Context, employeeIDs []uuid.UUID, asOf time.Time) ([]Salary, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var salaries []Salary
	query := `
SELECT DISTINCT ON (employee_id) *
FROM employee_salaries
WHERE employee_id IN ?
	AND effective_date <= ?
ORDER BY employee_id, effective_date DESC, created_at DESC
`
	err := r.conn(ctx).Raw(query, employeeIDs, asOf).Scan(&salaries).Error
	return salaries, err
}

func (r *repository) DeleteSalary(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Where("id = ?", id).
		Scopes(tenant.EmployeesOf(companyID)).
		Delete(&Salary{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateComponent(ctx context.Context, component *PayComponent) error {
	return r.conn(ctx).Create(component).Error
}

func (r *repository) FindComponentsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]PayComponent, error) {
	var components []PayComponent
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("kind, effective_from DESC, name").
		Find(&components).Error
	return components, err
}

// FindComponentsForPeriod returns components whose effective window
// overlaps [start, end].
func (r *repository) FindComponentsForPeriod(ctx context.Context, employeeIDs []uuid.UUID, start, end time.Time) ([]PayComponent, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var components []PayComponent
	err := r.conn(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("effective_from <= ?", end).
		Where("effective_to IS NULL OR effective_to >= ?", start).
		Order("employee_id, kind, name, id").
		Find(&components).Error
	return components, err
}

func (r *repository) CreateSuspension(ctx context.Context, suspension *Suspension) error {
	return r.conn(ctx).Create(suspension).Error
}

func (r *repository) FindSuspensionsForPeriod(ctx context.Context, employeeIDs []uuid.UUID, start, end time.Time) ([]Suspension, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var suspensions []Suspension
	err := r.conn(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("start_date <= ?", end).
		Where("end_date IS NULL OR end_date >= ?", start).
		Order("employee_id, start_date DESC").
		Find(&suspensions).Error
	return suspensions, err
}

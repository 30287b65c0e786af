package compensation_test

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/compensation"

	"github.com/google/uuid"
)

type fakeRepository struct {
	findEmployeeFn          func(ctx context.Context, companyID, id string) (*compensation.Employee, error)
	findEmployeesForPeriod  func(ctx context.Context, companyID string, departmentID *uuid.UUID, start, end time.Time) ([]compensation.Employee, error)
	createSalaryFn          func(ctx context.Context, salary *compensation.Salary) error
	findSalariesByCompanyFn func(ctx context.Context, companyID string) ([]compensation.Salary, error)
	findSalaryFn            func(ctx context.Context, companyID, id string) (*compensation.Salary, error)
	findSalariesInForceFn   func(ctx context.Context, employeeIDs []uuid.UUID, asOf time.Time) ([]compensation.Salary, error)
	deleteSalaryFn          func(ctx context.Context, companyID, id string) error
	createComponentFn       func(ctx context.Context, component *compensation.PayComponent) error
	findComponentsFn        func(ctx context.Context, employeeID uuid.UUID) ([]compensation.PayComponent, error)
	findComponentsPeriodFn  func(ctx context.Context, employeeIDs []uuid.UUID, start, end time.Time) ([]compensation.PayComponent, error)
	createSuspensionFn      func(ctx context.Context, suspension *compensation.Suspension) error
	findSuspensionsFn       func(ctx context.Context, employeeIDs []uuid.UUID, start, end time.Time) ([]compensation.Suspension, error)
}

func (f *fakeRepository) WithTx(tx *sql.Tx) compensation.Repository { return f }

func (f *fakeRepository) FindEmployeeByIDAndCompany(ctx context.Context, companyID, id string) (*compensation.Employee, error) {
	if f.findEmployeeFn != nil {
		return f.findEmployeeFn(ctx, companyID, id)
	}
	return &compensation.Employee{ID: uuid.MustParse(id)}, nil
}

func (f *fakeRepository) FindEmployeesForPeriod(ctx context.Context, companyID string, departmentID *uuid.UUID, start, end time.Time) ([]compensation.Employee, error) {
	if f.findEmployeesForPeriod != nil {
		return f.findEmployeesForPeriod(ctx, companyID, departmentID, start, end)
	}
	return nil, nil
}

func (f *fakeRepository) CreateSalary(ctx context.Context, salary *compensation.Salary) error {
	if f.createSalaryFn != nil {
		return f.createSalaryFn(ctx, salary)
	}
	return nil
}

func (f *fakeRepository) FindSalariesByCompany(ctx context.Context, companyID string) ([]compensation.Salary, error) {
	if f.findSalariesByCompanyFn != nil {
		return f.findSalariesByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeRepository) FindSalaryByIDAndCompany(ctx context.Context, companyID, id string) (*compensation.Salary, error) {
	if f.findSalaryFn != nil {
		return f.findSalaryFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeRepository) FindSalariesInForce(ctx context.Context, employeeIDs []uuid.UUID, asOf time.Time) ([]compensation.Salary, error) {
	if f.findSalariesInForceFn != nil {
		return f.findSalariesInForceFn(ctx, employeeIDs, asOf)
	}
	return nil, nil
}

func (f *fakeRepository) DeleteSalary(ctx context.Context, companyID, id string) error {
	if f.deleteSalaryFn != nil {
		return f.deleteSalaryFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeRepository) CreateComponent(ctx context.Context, component *compensation.PayComponent) error {
	if f.createComponentFn != nil {
		return f.createComponentFn(ctx, component)
	}
	return nil
}

func (f *fakeRepository) FindComponentsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]compensation.PayComponent, error) {
	if f.findComponentsFn != nil {
		return f.findComponentsFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeRepository) FindComponentsForPeriod(ctx context.Context, employeeIDs []uuid.UUID, start, end time.Time) ([]compensation.PayComponent, error) {
	if f.findComponentsPeriodFn != nil {
		return f.findComponentsPeriodFn(ctx, employeeIDs, start, end)
	}
	return nil, nil
}

func (f *fakeRepository) CreateSuspension(ctx context.Context, suspension *compensation.Suspension) error {
	if f.createSuspensionFn != nil {
		return f.createSuspensionFn(ctx, suspension)
	}
	return nil
}

func (f *fakeRepository) FindSuspensionsForPeriod(ctx context.Context, employeeIDs []uuid.UUID, start, end time.Time) ([]compensation.Suspension, error) {
	if f.findSuspensionsFn != nil {
		return f.findSuspensionsFn(ctx, employeeIDs, start, end)
	}
	return nil, nil
}

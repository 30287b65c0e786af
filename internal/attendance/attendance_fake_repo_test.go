package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn                func(ctx context.Context, a *Attendance) error
	updateFn                func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	findAllFn               func(ctx context.Context, companyID string, filter Filter) ([]Attendance, error)

	rows   []Attendance
	leaves []Leave
	refs   []EmployeeRef
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	if f.findByEmployeeAndDateFn != nil {
		return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindAll(ctx context.Context, companyID string, filter Filter) ([]Attendance, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeRepo) FindForPeriod(ctx context.Context, companyID string, employeeIDs []uuid.UUID, start, end time.Time) ([]Attendance, error) {
	return f.rows, nil
}

func (f *fakeRepo) FindApprovedLeaves(ctx context.Context, companyID string, employeeIDs []uuid.UUID, start, end time.Time) ([]Leave, error) {
	return f.leaves, nil
}

func (f *fakeRepo) FindEmployeeRefs(ctx context.Context, companyID string, employeeIDs []uuid.UUID) ([]EmployeeRef, error) {
	return f.refs, nil
}

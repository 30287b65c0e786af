package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filter struct {
	EmployeeID string
	From       time.Time
	To         time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, companyID string, filter Filter) ([]Attendance, error)
	FindForPeriod(ctx context.Context, companyID string, employeeIDs []uuid.UUID, start, end time.Time) ([]Attendance, error)
	FindApprovedLeaves(ctx context.Context, companyID string, employeeIDs []uuid.UUID, start, end time.Time) ([]Leave, error)
	FindEmployeeRefs(ctx context.Context, companyID string, employeeIDs []uuid.UUID) ([]EmployeeRef, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Omit("Employee").Save(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter Filter) ([]Attendance, error) {
	var rows []Attendance
	q := r.conn(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if !filter.From.IsZero() {
		q = q.Where("attendance_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("attendance_date <= ?", filter.To)
	}
	err := q.Order("attendance_date DESC, clock_in DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindForPeriod(ctx context.Context, companyID string, employeeIDs []uuid.UUID, start, end time.Time) ([]Attendance, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var rows []Attendance
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id IN ?", employeeIDs).
		Where("attendance_date BETWEEN ? AND ?", start, end).
		Order("employee_id, attendance_date").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindApprovedLeaves(ctx context.Context, companyID string, employeeIDs []uuid.UUID, start, end time.Time) ([]Leave, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var rows []Leave
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id IN ?", employeeIDs).
		Where("status = ?", LeaveStatusApproved).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("employee_id, start_date").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindEmployeeRefs(ctx context.Context, companyID string, employeeIDs []uuid.UUID) ([]EmployeeRef, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var rows []EmployeeRef
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", employeeIDs).
		Find(&rows).Error
	return rows, err
}

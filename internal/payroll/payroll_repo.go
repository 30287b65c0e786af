package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RunFilter struct {
	Status Status
	Year   int
	Month  time.Month
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRun(ctx context.Context, run *Run) error
	FindRunByID(ctx context.Context, companyID, id string) (*Run, error)
	FindRunsByCompany(ctx context.Context, companyID string, filter RunFilter) ([]Run, error)
	HasInFlightRun(ctx context.Context, companyID string, departmentID *uuid.UUID, period Period) (bool, error)
	ReplaceComputation(ctx context.Context, run *Run) error
	UpdateRunState(ctx context.Context, run *Run) error
	UpdateIrregularities(ctx context.Context, irregularities []Irregularity) error
	CreateTransition(ctx context.Context, t *Transition) error
	DeleteRun(ctx context.Context, companyID, id string) error
	FindBaselines(ctx context.Context, companyID uuid.UUID, employeeIDs []uuid.UUID, before time.Time, window int) (map[uuid.UUID]Baseline, error)
	SavePayslip(ctx context.Context, payslip *Payslip) error
	FindPayslip(ctx context.Context, companyID, runID, employeeID string) (*Payslip, error)
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

// conn binds the session to the service-owned transaction when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) CreateRun(ctx context.Context, run *Run) error {
	return mapRepositoryError(r.conn(ctx).Create(run).Error)
}

func (r *repository) FindRunByID(ctx context.Context, companyID, id string) (*Run, error) {
	var run Run
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("employee_id") }).
		Preload("Irregularities", func(db *gorm.DB) *gorm.DB { return db.Order("employee_id, seq") }).
		Preload("Failures", func(db *gorm.DB) *gorm.DB { return db.Order("employee_id") }).
		Preload("Transitions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&run, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &run, nil
}

func (r *repository) FindRunsByCompany(ctx context.Context, companyID string, filter RunFilter) ([]Run, error) {
	var runs []Run
	q := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Year > 0 {
		q = q.Where("period_year = ?", filter.Year)
	}
	if filter.Month > 0 {
		q = q.Where("period_month = ?", int(filter.Month))
	}
	err := q.Order("period_start DESC, created_at DESC").Find(&runs).Error
	return runs, err
}

func (r *repository) HasInFlightRun(ctx context.Context, companyID string, departmentID *uuid.UUID, period Period) (bool, error) {
	var count int64
	q := r.conn(ctx).
		Model(&Run{}).
		Scopes(tenant.Scope(companyID)).
		Where("period_year = ? AND period_month = ?", period.Year, int(period.Month)).
		Where("status <> ?", string(StatusLocked))
	if departmentID == nil {
		q = q.Where("department_id IS NULL")
	} else {
		q = q.Where("department_id = ?", *departmentID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// ReplaceComputation swaps the whole item set of a run and rewrites its header.
// Payslips rendered from the previous item set go with it.
func (r *repository) ReplaceComputation(ctx context.Context, run *Run) error {
	db := r.conn(ctx)
	for _, model := range []any{&Item{}, &Irregularity{}, &ComputationFailure{}, &Payslip{}} {
		if err := db.Where("run_id = ?", run.ID).Delete(model).Error; err != nil {
			return err
		}
	}
	if len(run.Items) > 0 {
		if err := db.Create(&run.Items).Error; err != nil {
			return err
		}
	}
	if len(run.Irregularities) > 0 {
		if err := db.Create(&run.Irregularities).Error; err != nil {
			return err
		}
	}
	if len(run.Failures) > 0 {
		if err := db.Create(&run.Failures).Error; err != nil {
			return err
		}
	}
	return r.UpdateRunState(ctx, run)
}

func (r *repository) UpdateRunState(ctx context.Context, run *Run) error {
	return mapRepositoryError(r.conn(ctx).Omit(clause.Associations).Save(run).Error)
}

func (r *repository) UpdateIrregularities(ctx context.Context, irregularities []Irregularity) error {
	db := r.conn(ctx)
	for _, irr := range irregularities {
		err := db.Model(&Irregularity{}).
			Where("id = ? AND run_id = ?", irr.ID, irr.RunID).
			Updates(map[string]any{
				"status":           irr.Status,
				"resolved_by":      irr.ResolvedBy,
				"resolved_at":      irr.ResolvedAt,
				"decision":         irr.Decision,
				"resolution_notes": irr.ResolutionNotes,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) CreateTransition(ctx context.Context, t *Transition) error {
	return r.conn(ctx).Create(t).Error
}

func (r *repository) DeleteRun(ctx context.Context, companyID, id string) error {
	db := r.conn(ctx)
	for _, model := range []any{&Payslip{}, &Transition{}, &ComputationFailure{}, &Irregularity{}, &Item{}} {
		if err := db.Scopes(tenant.Scope(companyID)).Where("run_id = ?", id).Delete(model).Error; err != nil {
			return err
		}
	}
	res := db.Scopes(tenant.Scope(companyID)).Delete(&Run{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return mapRepositoryError(gorm.ErrRecordNotFound)
	}
	return nil
}

type historyRow struct {
	EmployeeID       uuid.UUID
	PeriodStart      time.Time
	BaseSalary       decimal.Decimal
	OvertimeAmount   decimal.Decimal
	CommissionAmount decimal.Decimal
}

// FindBaselines reads up to window locked periods per employee that ended
// before the given date, newest first.
func (r *repository) FindBaselines(ctx context.Context, companyID uuid.UUID, employeeIDs []uuid.UUID, before time.Time, window int) (map[uuid.UUID]Baseline, error) {
	out := make(map[uuid.UUID]Baseline, len(employeeIDs))
	if len(employeeIDs) == 0 || window <= 0 {
		return out, nil
	}

	var rows []historyRow
	err := r.conn(ctx).Raw(`
		SELECT employee_id, period_start, base_salary, overtime_amount, commission_amount
		FROM (
			SELECT i.employee_id, r.period_start, i.base_salary, i.overtime_amount, i.commission_amount,
			       ROW_NUMBER() OVER (PARTITION BY i.employee_id ORDER BY r.period_start DESC) AS rn
			FROM payroll_items i
			JOIN payroll_runs r ON r.id = i.run_id
			WHERE r.company_id = ? AND r.status = ? AND r.period_end < ? AND i.employee_id IN ?
		) h
		WHERE h.rn <= ?
		ORDER BY employee_id, period_start DESC
	`, companyID, string(StatusLocked), before, employeeIDs, window).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make(map[uuid.UUID][]HistoryEntry)
	for _, row := range rows {
		history[row.EmployeeID] = append(history[row.EmployeeID], HistoryEntry(row))
	}
	for id, h := range history {
		out[id] = NewBaseline(h)
	}
	return out, nil
}

func (r *repository) SavePayslip(ctx context.Context, payslip *Payslip) error {
	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "run_id"}, {Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"item_id", "file_name", "content", "generated_at"}),
	}).Create(payslip).Error
}

func (r *repository) FindPayslip(ctx context.Context, companyID, runID, employeeID string) (*Payslip, error) {
	var p Payslip
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("run_id = ? AND employee_id = ?", runID, employeeID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

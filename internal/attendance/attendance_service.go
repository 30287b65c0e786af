package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Clock-ins after 09:15 UTC are marked late.
const lateAfterMinutes = 9*60 + 15

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, companyID string, filter Filter) ([]AttendanceResponse, error)
	Summary(ctx context.Context, companyID string, q SummaryQuery) (SummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	source payroll.AttendanceSource
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, source payroll.AttendanceSource, now func() time.Time, logger ...*zap.Logger) Service {
	if now == nil {
		now = time.Now
	}
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, source: source, now: now, logger: l}
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	cid, eid, err := parseIDs(companyID, employeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := dateOf(now)

	_, err = qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	switch {
	case err == nil:
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return AttendanceResponse{}, err
	}

	status := StatusPresent
	if now.Hour()*60+now.Minute() > lateAfterMinutes {
		status = StatusLate
	}

	source := req.Source
	if source == "" {
		source = "MANUAL"
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      cid,
		EmployeeID:     eid,
		AttendanceDate: today,
		ClockIn:        now,
		Status:         status,
		Source:         source,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("clock in recorded",
		zap.String("employee_id", employeeID),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	if _, _, err := parseIDs(companyID, employeeID); err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, dateOf(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrClockInNotFound
		}
		return AttendanceResponse{}, err
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	row.ClockOut = &now
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter Filter) ([]AttendanceResponse, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, attendanceerrors.ErrInvalidRange
	}

	rows, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// Summary exposes the same aggregate the payroll pipeline consumes.
func (s *service) Summary(ctx context.Context, companyID string, q SummaryQuery) (SummaryResponse, error) {
	cid, eid, err := parseIDs(companyID, q.EmployeeID)
	if err != nil {
		return SummaryResponse{}, err
	}
	period, err := payroll.NewMonthlyPeriod(q.Year, time.Month(q.Month))
	if err != nil {
		return SummaryResponse{}, attendanceerrors.ErrInvalidRange
	}

	aggs, err := s.source.Aggregates(ctx, cid, []uuid.UUID{eid}, period)
	if err != nil {
		return SummaryResponse{}, err
	}
	agg := aggs[eid]

	return SummaryResponse{
		EmployeeID:             eid.String(),
		Period:                 period.String(),
		ScheduledMinutes:       agg.ScheduledMinutes,
		OvertimeMinutes:        agg.OvertimeMinutes,
		AbsenceDays:            agg.AbsenceDays,
		AbsenceDeductionPerDay: agg.AbsenceDeductionPerDay.StringFixed(2),
		UnpaidLeaveDays:        agg.UnpaidLeaveDays,
	}, nil
}

func parseIDs(companyID, employeeID string) (uuid.UUID, uuid.UUID, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, attendanceerrors.ErrInvalidEmployee
	}
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, attendanceerrors.ErrInvalidEmployee
	}
	return cid, eid, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		ClockIn:        a.ClockIn.Format(time.RFC3339),
		WorkedMinutes:  a.WorkedMinutes(),
		Status:         a.Status,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}

package attendance

import (
	"context"
	"time"

	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Schedule is the company work pattern: Monday to Friday, DailyMinutes a day.
type Schedule struct {
	DailyMinutes           int
	AbsenceDeductionPerDay decimal.Decimal
}

// Source turns raw clock records and approved leave into one
// payroll.AttendanceAggregate per employee.
type Source struct {
	repo     Repository
	schedule Schedule
	now      func() time.Time
	logger   *zap.Logger
}

var _ payroll.AttendanceSource = (*Source)(nil)

func NewSource(repo Repository, schedule Schedule, now func() time.Time, logger ...*zap.Logger) *Source {
	if schedule.DailyMinutes <= 0 {
		schedule.DailyMinutes = 8 * 60
	}
	if now == nil {
		now = time.Now
	}
	l := zap.L().Named("attendance.source")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.source")
	}
	return &Source{repo: repo, schedule: schedule, now: now, logger: l}
}

// Aggregates summarizes the period for every requested employee.
//
// The employment window is the period clamped to the employee's tenure; a
// hire after the period start counts from the following day, matching base
// salary proration. Absences are workdays inside the window, up to today,
// with neither a clock record nor approved leave. Approved UNPAID leave
// workdays are reported separately and never count as absences.
func (s *Source) Aggregates(ctx context.Context, companyID uuid.UUID, employeeIDs []uuid.UUID, period payroll.Period) (map[uuid.UUID]payroll.AttendanceAggregate, error) {
	out := make(map[uuid.UUID]payroll.AttendanceAggregate, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}
	cid := companyID.String()

	refs, err := s.repo.FindEmployeeRefs(ctx, cid, employeeIDs)
	if err != nil {
		return nil, err
	}
	refByID := make(map[uuid.UUID]EmployeeRef, len(refs))
	for _, ref := range refs {
		refByID[ref.ID] = ref
	}

	rows, err := s.repo.FindForPeriod(ctx, cid, employeeIDs, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	workedByEmployee := make(map[uuid.UUID]map[time.Time]int)
	for _, row := range rows {
		days, ok := workedByEmployee[row.EmployeeID]
		if !ok {
			days = make(map[time.Time]int)
			workedByEmployee[row.EmployeeID] = days
		}
		days[dateOf(row.AttendanceDate)] += row.WorkedMinutes()
	}

	leaves, err := s.repo.FindApprovedLeaves(ctx, cid, employeeIDs, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	leavesByEmployee := make(map[uuid.UUID][]Leave)
	for _, l := range leaves {
		leavesByEmployee[l.EmployeeID] = append(leavesByEmployee[l.EmployeeID], l)
	}

	today := dateOf(s.now())
	for _, id := range employeeIDs {
		from, to := employmentWindow(refByID[id], period)
		out[id] = s.aggregate(from, to, today, workedByEmployee[id], leavesByEmployee[id])
	}

	contextutil.GetLogger(ctx, s.logger).Debug("attendance aggregated",
		zap.String("company_id", cid),
		zap.String("period", period.String()),
		zap.Int("employees", len(employeeIDs)),
		zap.Int("records", len(rows)),
		zap.Int("leaves", len(leaves)),
	)
	return out, nil
}

func (s *Source) aggregate(from, to, today time.Time, worked map[time.Time]int, leaves []Leave) payroll.AttendanceAggregate {
	agg := payroll.AttendanceAggregate{AbsenceDeductionPerDay: s.schedule.AbsenceDeductionPerDay}

	for day, minutes := range worked {
		if day.Before(from) || day.After(to) {
			continue
		}
		if isWorkday(day) {
			agg.OvertimeMinutes += max(0, minutes-s.schedule.DailyMinutes)
		} else {
			agg.OvertimeMinutes += minutes
		}
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !isWorkday(day) {
			continue
		}
		agg.ScheduledMinutes += s.schedule.DailyMinutes

		if leave, onLeave := leaveOn(leaves, day); onLeave {
			if leave.LeaveType == LeaveTypeUnpaid {
				agg.UnpaidLeaveDays++
			}
			continue
		}
		if _, clocked := worked[day]; !clocked && !day.After(today) {
			agg.AbsenceDays++
		}
	}
	return agg
}

func employmentWindow(ref EmployeeRef, period payroll.Period) (time.Time, time.Time) {
	from, to := dateOf(period.Start), dateOf(period.End)
	if !ref.HireDate.IsZero() {
		if hire := dateOf(ref.HireDate); hire.After(from) {
			from = hire.AddDate(0, 0, 1)
		}
	}
	if ref.TerminationDate != nil {
		if term := dateOf(*ref.TerminationDate); term.Before(to) {
			to = term
		}
	}
	return from, to
}

func leaveOn(leaves []Leave, day time.Time) (Leave, bool) {
	for _, l := range leaves {
		if !day.Before(dateOf(l.StartDate)) && !day.After(dateOf(l.EndDate)) {
			return l, true
		}
	}
	return Leave{}, false
}

func isWorkday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package attendance

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/payroll"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func shift(employeeID uuid.UUID, d, minutes int) Attendance {
	in := day(d).Add(9 * time.Hour)
	out := in.Add(time.Duration(minutes) * time.Minute)
	return Attendance{EmployeeID: employeeID, AttendanceDate: day(d), ClockIn: in, ClockOut: &out}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func march(t *testing.T) payroll.Period {
	t.Helper()
	p, err := payroll.NewMonthlyPeriod(2026, time.March)
	require.NoError(t, err)
	return p
}

var schedule = Schedule{DailyMinutes: 480, AbsenceDeductionPerDay: decimal.NewFromInt(50)}

// March 2026 starts on a Sunday and has 22 weekdays.
func TestSource_Aggregates_FullMonth(t *testing.T) {
	emp := uuid.New()
	repo := &fakeRepo{refs: []EmployeeRef{{ID: emp, HireDate: time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)}}}

	skip := map[int]bool{4: true, 5: true, 9: true, 10: true, 12: true, 13: true}
	for d := 1; d <= 31; d++ {
		if !isWorkday(day(d)) || skip[d] {
			continue
		}
		minutes := 480
		if d == 2 {
			minutes = 540
		}
		repo.rows = append(repo.rows, shift(emp, d, minutes))
	}
	repo.rows = append(repo.rows, shift(emp, 7, 120))
	repo.leaves = []Leave{
		{EmployeeID: emp, LeaveType: "ANNUAL", StartDate: day(4), EndDate: day(5)},
		{EmployeeID: emp, LeaveType: LeaveTypeUnpaid, StartDate: day(9), EndDate: day(10)},
	}

	src := NewSource(repo, schedule, fixedNow(time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC)))
	aggs, err := src.Aggregates(context.Background(), uuid.New(), []uuid.UUID{emp}, march(t))
	require.NoError(t, err)

	agg := aggs[emp]
	assert.Equal(t, 22*480, agg.ScheduledMinutes)
	assert.Equal(t, 60+120, agg.OvertimeMinutes)
	assert.Equal(t, 2, agg.AbsenceDays)
	assert.Equal(t, 2, agg.UnpaidLeaveDays)
	assert.True(t, decimal.NewFromInt(50).Equal(agg.AbsenceDeductionPerDay))
}

func TestSource_Aggregates_ClampsToTenure(t *testing.T) {
	emp := uuid.New()
	terminated := day(27)
	repo := &fakeRepo{refs: []EmployeeRef{{ID: emp, HireDate: day(15), TerminationDate: &terminated}}}

	src := NewSource(repo, schedule, fixedNow(time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)))
	aggs, err := src.Aggregates(context.Background(), uuid.New(), []uuid.UUID{emp}, march(t))
	require.NoError(t, err)

	// 16..27 March holds ten weekdays.
	assert.Equal(t, 10*480, aggs[emp].ScheduledMinutes)
	assert.Equal(t, 10, aggs[emp].AbsenceDays)
}

func TestSource_Aggregates_FutureDaysAreNotAbsences(t *testing.T) {
	emp := uuid.New()
	open := day(16).Add(9 * time.Hour)
	repo := &fakeRepo{
		refs: []EmployeeRef{{ID: emp, HireDate: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)}},
		rows: []Attendance{{EmployeeID: emp, AttendanceDate: day(16), ClockIn: open}},
	}

	src := NewSource(repo, schedule, fixedNow(time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)))
	aggs, err := src.Aggregates(context.Background(), uuid.New(), []uuid.UUID{emp}, march(t))
	require.NoError(t, err)

	// 2..18 March holds 13 weekdays; the 16th has an open clock-in.
	assert.Equal(t, 12, aggs[emp].AbsenceDays)
	assert.Equal(t, 0, aggs[emp].OvertimeMinutes)
	assert.Equal(t, 22*480, aggs[emp].ScheduledMinutes)
}

func TestSource_Aggregates_Empty(t *testing.T) {
	aggs, err := NewSource(&fakeRepo{}, schedule, nil).Aggregates(context.Background(), uuid.New(), nil, march(t))
	require.NoError(t, err)
	assert.Empty(t, aggs)
}

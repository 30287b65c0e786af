package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NamedAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	// Vested allowances survive an unpaid suspension.
	Vested bool `json:"vested,omitempty"`
}

type Loan struct {
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
}

type Commission struct {
	Rate        decimal.Decimal `json:"rate"`
	SalesAmount decimal.Decimal `json:"sales_amount"`
}

type Suspension struct {
	Start   time.Time  `json:"start"`
	End     *time.Time `json:"end,omitempty"`
	WithPay bool       `json:"with_pay"`
}

// ActiveDuring reports whether the suspension overlaps the period.
func (s Suspension) ActiveDuring(p Period) bool {
	if dateOf(s.Start).After(dateOf(p.End)) {
		return false
	}
	if s.End != nil && dateOf(*s.End).Before(dateOf(p.Start)) {
		return false
	}
	return true
}

// CompensationProfile is the read-only compensation snapshot of one employee.
type CompensationProfile struct {
	EmployeeID      uuid.UUID       `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	Currency        string          `json:"currency"`
	Allowances      []NamedAmount   `json:"allowances,omitempty"`
	FixedDeductions []NamedAmount   `json:"fixed_deductions,omitempty"`
	Penalties       []NamedAmount   `json:"penalties,omitempty"`
	Loan            *Loan           `json:"loan,omitempty"`
	Commission      *Commission     `json:"commission,omitempty"`
	HireDate        time.Time       `json:"hire_date"`
	TerminationDate *time.Time      `json:"termination_date,omitempty"`
	Suspension      *Suspension     `json:"suspension,omitempty"`
}

type AttendanceAggregate struct {
	ScheduledMinutes       int             `json:"scheduled_minutes"`
	OvertimeMinutes        int             `json:"overtime_minutes"`
	AbsenceDays            int             `json:"absence_days"`
	AbsenceDeductionPerDay decimal.Decimal `json:"absence_deduction_per_day"`
	UnpaidLeaveDays        int             `json:"unpaid_leave_days"`
}

// Baseline summarizes an employee's trailing locked runs.
type Baseline struct {
	Periods            int              `json:"periods"`
	PreviousBaseSalary *decimal.Decimal `json:"previous_base_salary,omitempty"`
	AverageOvertime    decimal.Decimal  `json:"average_overtime"`
	AverageCommission  decimal.Decimal  `json:"average_commission"`
}

// HistoryEntry is one employee line from a locked run, newest first when listed.
type HistoryEntry struct {
	EmployeeID       uuid.UUID
	PeriodStart      time.Time
	BaseSalary       decimal.Decimal
	OvertimeAmount   decimal.Decimal
	CommissionAmount decimal.Decimal
}

// NewBaseline averages overtime and commission over the history and takes the
// newest base salary as the previous one.
func NewBaseline(history []HistoryEntry) Baseline {
	if len(history) == 0 {
		return Baseline{}
	}
	var overtime, commission decimal.Decimal
	for _, h := range history {
		overtime = overtime.Add(h.OvertimeAmount)
		commission = commission.Add(h.CommissionAmount)
	}
	n := decimal.NewFromInt(int64(len(history)))
	prev := history[0].BaseSalary
	return Baseline{
		Periods:            len(history),
		PreviousBaseSalary: &prev,
		AverageOvertime:    overtime.Div(n).Round(2),
		AverageCommission:  commission.Div(n).Round(2),
	}
}

// EmployeeInput bundles everything the pipeline needs for one employee.
type EmployeeInput struct {
	Profile    CompensationProfile `json:"profile"`
	Attendance AttendanceAggregate `json:"attendance"`
	Baseline   Baseline            `json:"baseline"`
}

//go:generate mockgen -source=payroll_input.go -destination=mock/payroll_sources_mock.go -package=mock
type CompensationSource interface {
	ListProfiles(ctx context.Context, companyID uuid.UUID, departmentID *uuid.UUID, period Period) ([]CompensationProfile, error)
}

type AttendanceSource interface {
	Aggregates(ctx context.Context, companyID uuid.UUID, employeeIDs []uuid.UUID, period Period) (map[uuid.UUID]AttendanceAggregate, error)
}

type BaselineSource interface {
	FindBaselines(ctx context.Context, companyID uuid.UUID, employeeIDs []uuid.UUID, before time.Time, window int) (map[uuid.UUID]Baseline, error)
}

// Authorizer answers whether an actor holds a capability on payroll runs.
type Authorizer interface {
	CanPerform(ctx context.Context, companyID, actorID, action string) (bool, error)
}

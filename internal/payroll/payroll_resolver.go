package payroll

import (
	"fmt"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Components are the resolved, rounded monetary inputs for one employee.
type Components struct {
	EmployeeID   uuid.UUID
	EmployeeName string
	Currency     string
	Period       Period

	BaseSalary             decimal.Decimal
	ProrationFactor        decimal.Decimal
	ProratedForHire        bool
	ProratedForTermination bool
	Suspended              bool
	SuspendedWithoutPay    bool

	ProratedBaseSalary decimal.Decimal
	Allowances         []NamedAmount
	OvertimeMinutes    int
	OvertimeAmount     decimal.Decimal
	CommissionAmount   decimal.Decimal

	LoanInstallment      decimal.Decimal
	Penalties            []NamedAmount
	AbsenceDays          int
	AbsenceDeduction     decimal.Decimal
	UnpaidLeaveDays      int
	UnpaidLeaveDeduction decimal.Decimal
	FixedDeductions      []NamedAmount
}

type Resolver struct {
	cfg Config
}

func NewResolver(cfg Config) Resolver {
	return Resolver{cfg: cfg}
}

// Resolve turns a profile and its attendance aggregate into monetary components.
// It fails with ErrInvalidProfile and never touches anything outside its arguments.
func (r Resolver) Resolve(profile CompensationProfile, attendance AttendanceAggregate, period Period) (Components, error) {
	if err := period.Validate(); err != nil {
		return Components{}, invalidProfile(profile.EmployeeID, err.Error())
	}
	if err := validateProfile(profile, attendance); err != nil {
		return Components{}, err
	}

	factor, forHire, forTermination, err := prorationFactor(profile, period)
	if err != nil {
		return Components{}, err
	}

	round := r.cfg.round
	base := profile.BaseSalary
	periodDays := decimal.NewFromInt(int64(period.Days()))

	currency := profile.Currency
	if currency == "" {
		currency = r.cfg.Currency
	}

	c := Components{
		EmployeeID:             profile.EmployeeID,
		EmployeeName:           profile.EmployeeName,
		Currency:               currency,
		Period:                 period,
		BaseSalary:             round(base),
		ProrationFactor:        factor,
		ProratedForHire:        forHire,
		ProratedForTermination: forTermination,
		ProratedBaseSalary:     round(base.Mul(factor)),
		OvertimeMinutes:        attendance.OvertimeMinutes,
		AbsenceDays:            attendance.AbsenceDays,
		UnpaidLeaveDays:        attendance.UnpaidLeaveDays,
	}

	c.Allowances = make([]NamedAmount, 0, len(profile.Allowances))
	for _, a := range profile.Allowances {
		c.Allowances = append(c.Allowances, NamedAmount{Name: a.Name, Amount: round(a.Amount.Mul(factor)), Vested: a.Vested})
	}

	if attendance.OvertimeMinutes > 0 {
		hours := int64(r.cfg.WorkingDaysPerMonth * r.cfg.WorkingHoursPerDay * 60)
		c.OvertimeAmount = round(base.
			Mul(decimal.NewFromInt(int64(attendance.OvertimeMinutes))).
			Mul(r.cfg.OvertimeMultiplier).
			Div(decimal.NewFromInt(hours)))
	}

	if profile.Commission != nil {
		c.CommissionAmount = round(profile.Commission.Rate.Mul(profile.Commission.SalesAmount))
	}

	if loan := profile.Loan; loan != nil {
		c.LoanInstallment = round(decimal.Min(loan.MonthlyInstallment, loan.RemainingBalance))
	}

	c.Penalties = roundAll(profile.Penalties, round)
	c.FixedDeductions = roundAll(profile.FixedDeductions, round)
	c.AbsenceDeduction = round(attendance.AbsenceDeductionPerDay.Mul(decimal.NewFromInt(int64(attendance.AbsenceDays))))
	c.UnpaidLeaveDeduction = round(base.Mul(decimal.NewFromInt(int64(attendance.UnpaidLeaveDays))).Div(periodDays))

	if s := profile.Suspension; s != nil && s.ActiveDuring(period) {
		c.Suspended = true
		if !s.WithPay {
			c.SuspendedWithoutPay = true
			c.ProratedBaseSalary = decimal.Zero
			c.OvertimeAmount = decimal.Zero
			c.CommissionAmount = decimal.Zero
			// Nothing was earned, so nothing is docked for leave or absence.
			c.AbsenceDeduction = decimal.Zero
			c.UnpaidLeaveDeduction = decimal.Zero
			for i := range c.Allowances {
				if !c.Allowances[i].Vested {
					c.Allowances[i].Amount = decimal.Zero
				}
			}
		}
	}

	return c, nil
}

func validateProfile(p CompensationProfile, a AttendanceAggregate) error {
	if p.EmployeeID == uuid.Nil {
		return invalidProfile(p.EmployeeID, "employee id is required")
	}
	if p.BaseSalary.IsNegative() {
		return invalidProfile(p.EmployeeID, "base salary cannot be negative")
	}
	for _, group := range [][]NamedAmount{p.Allowances, p.FixedDeductions, p.Penalties} {
		for _, v := range group {
			if v.Amount.IsNegative() {
				return invalidProfile(p.EmployeeID, fmt.Sprintf("%s cannot be negative", v.Name))
			}
		}
	}
	if l := p.Loan; l != nil && (l.MonthlyInstallment.IsNegative() || l.RemainingBalance.IsNegative()) {
		return invalidProfile(p.EmployeeID, "loan amounts cannot be negative")
	}
	if c := p.Commission; c != nil && (c.Rate.IsNegative() || c.SalesAmount.IsNegative()) {
		return invalidProfile(p.EmployeeID, "commission cannot be negative")
	}
	if a.OvertimeMinutes < 0 || a.AbsenceDays < 0 || a.UnpaidLeaveDays < 0 || a.AbsenceDeductionPerDay.IsNegative() {
		return invalidProfile(p.EmployeeID, "attendance values cannot be negative")
	}
	return nil
}

// prorationFactor returns workedDays/periodDays rounded to six places. A hire
// after period start counts from the day after the hire date, except that a
// hire on the last worked day still earns that day; a termination inside the
// period counts through the termination date.
func prorationFactor(p CompensationProfile, period Period) (decimal.Decimal, bool, bool, error) {
	from, to := dateOf(period.Start), dateOf(period.End)
	var forHire, forTermination bool

	if p.TerminationDate != nil {
		if term := dateOf(*p.TerminationDate); term.Before(to) {
			to = term
			forTermination = true
		}
	}
	if !p.HireDate.IsZero() {
		if hire := dateOf(p.HireDate); hire.After(from) {
			from = hire.AddDate(0, 0, 1)
			if from.After(to) && !hire.After(to) {
				from = hire
			}
			forHire = true
		}
	}

	worked := 0
	if !from.After(to) {
		worked = daysInclusive(from, to)
	}
	if worked <= 0 {
		return decimal.Zero, false, false, invalidProfile(p.EmployeeID, fmt.Sprintf("no worked days in period %s", period))
	}

	factor := decimal.NewFromInt(int64(worked)).
		Div(decimal.NewFromInt(int64(period.Days()))).
		Round(6)
	return factor, forHire, forTermination, nil
}

func roundAll(in []NamedAmount, round func(decimal.Decimal) decimal.Decimal) []NamedAmount {
	out := make([]NamedAmount, 0, len(in))
	for _, v := range in {
		out = append(out, NamedAmount{Name: v.Name, Amount: round(v.Amount), Vested: v.Vested})
	}
	return out
}

func invalidProfile(employeeID uuid.UUID, reason string) error {
	return fmt.Errorf("%w: employee %s: %s", payrollerrors.ErrInvalidProfile, employeeID, reason)
}

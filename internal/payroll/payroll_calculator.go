package payroll

import (
	"fmt"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/shopspring/decimal"
)

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) Calculator {
	return Calculator{cfg: cfg}
}

// Calculate turns resolved components into an item. The only failure is
// ErrMissingRateTable. Net pay may come out negative.
func (c Calculator) Calculate(comp Components) (Item, error) {
	round := c.cfg.round

	earnings := Lines{{Kind: LineBaseSalary, Name: "Base Salary", Amount: comp.ProratedBaseSalary}}
	allowances := decimal.Zero
	for _, a := range comp.Allowances {
		earnings = append(earnings, Line{Kind: LineAllowance, Name: a.Name, Amount: a.Amount})
		allowances = allowances.Add(a.Amount)
	}
	if comp.OvertimeAmount.IsPositive() {
		earnings = append(earnings, Line{Kind: LineOvertime, Name: "Overtime", Amount: comp.OvertimeAmount})
	}
	if comp.CommissionAmount.IsPositive() {
		earnings = append(earnings, Line{Kind: LineCommission, Name: "Commission", Amount: comp.CommissionAmount})
	}
	gross := comp.ProratedBaseSalary.Add(allowances).Add(comp.OvertimeAmount).Add(comp.CommissionAmount)

	statutory := c.cfg.Statutory
	social := round(contribution(gross, statutory.SocialInsurance))
	health := round(contribution(gross, statutory.HealthInsurance))
	pension := round(contribution(gross, statutory.Pension))

	taxable := gross.Sub(social)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax, err := c.Tax(taxable)
	if err != nil {
		return Item{}, fmt.Errorf("employee %s: %w", comp.EmployeeID, err)
	}

	penalties := decimal.Zero
	for _, p := range comp.Penalties {
		penalties = penalties.Add(p.Amount)
	}

	deductions := Lines{
		{Kind: LineSocialInsurance, Name: "Social Insurance", Amount: social},
		{Kind: LineHealthInsurance, Name: "Health Insurance", Amount: health},
		{Kind: LinePension, Name: "Pension", Amount: pension},
		{Kind: LineTax, Name: "Income Tax", Amount: tax},
		{Kind: LineLoan, Name: "Loan Installment", Amount: comp.LoanInstallment},
		{Kind: LinePenalty, Name: "Penalties", Amount: penalties},
		{Kind: LineAbsence, Name: "Unexcused Absence", Amount: comp.AbsenceDeduction},
		{Kind: LineUnpaidLeave, Name: "Unpaid Leave", Amount: comp.UnpaidLeaveDeduction},
	}
	for _, d := range comp.FixedDeductions {
		deductions = append(deductions, Line{Kind: LineFixed, Name: d.Name, Amount: d.Amount})
	}
	total := deductions.Total()

	return Item{
		EmployeeID:               comp.EmployeeID,
		EmployeeName:             comp.EmployeeName,
		Currency:                 comp.Currency,
		BaseSalary:               comp.BaseSalary,
		ProratedBaseSalary:       comp.ProratedBaseSalary,
		AllowancesTotal:          allowances,
		OvertimeMinutes:          comp.OvertimeMinutes,
		OvertimeAmount:           comp.OvertimeAmount,
		CommissionAmount:         comp.CommissionAmount,
		ProrationFactor:          comp.ProrationFactor,
		ProratedForHire:          comp.ProratedForHire,
		ProratedForTermination:   comp.ProratedForTermination,
		Suspended:                comp.Suspended,
		AbsenceDays:              comp.AbsenceDays,
		UnpaidLeaveDays:          comp.UnpaidLeaveDays,
		GrossPay:                 gross,
		TaxableIncome:            taxable,
		TaxAmount:                tax,
		SocialInsurance:          social,
		HealthInsurance:          health,
		Pension:                  pension,
		LoanDeduction:            comp.LoanInstallment,
		PenaltyDeduction:         penalties,
		AbsenceDeduction:         comp.AbsenceDeduction,
		UnpaidLeaveDeduction:     comp.UnpaidLeaveDeduction,
		TotalDeductions:          total,
		NetPay:                   gross.Sub(total),
		ExcludedFromDisbursement: comp.Suspended,
		Earnings:                 earnings,
		Deductions:               deductions,
	}, nil
}

// Tax applies the configured bracket policy to taxable income.
func (c Calculator) Tax(taxable decimal.Decimal) (decimal.Decimal, error) {
	brackets := c.cfg.Tax.Brackets
	idx := -1
	for i, b := range brackets {
		if b.Contains(taxable) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return decimal.Zero, fmt.Errorf("%w: taxable income %s under config %s", payrollerrors.ErrMissingRateTable, taxable.StringFixed(c.cfg.CurrencyPrecision), c.cfg.Version)
	}

	if c.cfg.Tax.Policy != BracketPolicyMarginal {
		return c.cfg.round(taxable.Mul(brackets[idx].Rate)), nil
	}

	tax := decimal.Zero
	covered := decimal.Zero
	for _, b := range brackets[:idx+1] {
		if b.MinIncome.GreaterThan(covered) {
			return decimal.Zero, fmt.Errorf("%w: gap below %s under config %s", payrollerrors.ErrMissingRateTable, b.MinIncome, c.cfg.Version)
		}
		upper := taxable
		if b.MaxIncome != nil && b.MaxIncome.LessThan(taxable) {
			upper = *b.MaxIncome
		}
		if upper.GreaterThan(covered) {
			tax = tax.Add(upper.Sub(covered).Mul(b.Rate))
			covered = upper
		}
	}
	return c.cfg.round(tax), nil
}

func contribution(gross decimal.Decimal, rule ContributionRule) decimal.Decimal {
	base := gross
	if rule.Ceiling != nil && base.GreaterThan(*rule.Ceiling) {
		base = *rule.Ceiling
	}
	if base.IsNegative() {
		return decimal.Zero
	}
	return base.Mul(rule.Rate)
}

package payroll

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Detector struct {
	cfg Config
}

func NewDetector(cfg Config) Detector {
	return Detector{cfg: cfg}
}

// Detect flags anomalies on an item against the employee's baseline. Output
// follows the fixed type order and ids derive from (run, employee, type), so
// identical inputs give identical irregularities.
func (d Detector) Detect(item Item, baseline Baseline) []Irregularity {
	th := d.cfg.Thresholds
	var found []Irregularity
	add := func(irr Irregularity) {
		irr.ID = IrregularityID(item.RunID, item.EmployeeID, irr.Type)
		irr.RunID = item.RunID
		irr.CompanyID = item.CompanyID
		irr.EmployeeID = item.EmployeeID
		irr.Seq = len(found) + 1
		irr.Status = IrregularityPending
		found = append(found, irr)
	}

	if irr, ok := d.spike(IrregularityOvertimeSpike, SeverityHigh, "overtime", item.OvertimeAmount, baseline.AverageOvertime, th.OvertimeSpikePct); ok {
		add(irr)
	}

	if prev := baseline.PreviousBaseSalary; prev != nil && prev.IsPositive() {
		variance := variancePct(item.BaseSalary, *prev)
		if variance.GreaterThan(th.SalarySpikePct) {
			add(Irregularity{
				Type:          IrregularitySalarySpike,
				Severity:      SeverityMedium,
				CurrentValue:  item.BaseSalary,
				BaselineValue: decimal.NewNullDecimal(*prev),
				VariancePct:   decimal.NewNullDecimal(variance),
				Description:   fmt.Sprintf("base salary rose %s%% over the previous period", variance.StringFixed(2)),
			})
		}
	}

	if irr, ok := d.spike(IrregularityCommissionSpike, SeverityMedium, "commission", item.CommissionAmount, baseline.AverageCommission, th.CommissionSpikePct); ok {
		add(irr)
	}

	if item.NetPay.IsNegative() {
		add(Irregularity{
			Type:         IrregularityNegativeNetPay,
			Severity:     SeverityCritical,
			CurrentValue: item.NetPay,
			Description:  fmt.Sprintf("net pay is negative (%s); deductions exceed gross pay", item.NetPay.StringFixed(2)),
		})
	}

	if item.ProratedForHire {
		add(Irregularity{
			Type:         IrregularityNewHireProrated,
			Severity:     SeverityInfo,
			CurrentValue: item.ProratedBaseSalary,
			Description:  fmt.Sprintf("new hire prorated at factor %s", item.ProrationFactor.String()),
		})
	}

	if irr, ok := deductionCheck(IrregularityLoanDeduction, "loan installment", item.LoanDeduction, th.LoanDeductionCap); ok {
		add(irr)
	}
	if irr, ok := deductionCheck(IrregularityPenaltyDeduction, "penalty deduction", item.PenaltyDeduction, th.PenaltyDeductionCap); ok {
		add(irr)
	}
	if irr, ok := deductionCheck(IrregularityAbsenceDeduction, "absence deduction", item.AbsenceDeduction, th.AbsenceDeductionCap); ok {
		add(irr)
	}

	if th.ExtendedUnpaidLeaveDays > 0 && item.UnpaidLeaveDays > th.ExtendedUnpaidLeaveDays {
		add(Irregularity{
			Type:         IrregularityExtendedUnpaidLeave,
			Severity:     SeverityHigh,
			CurrentValue: decimal.NewFromInt(int64(item.UnpaidLeaveDays)),
			Description:  fmt.Sprintf("%d unpaid leave days exceed the %d day threshold", item.UnpaidLeaveDays, th.ExtendedUnpaidLeaveDays),
		})
	}

	if item.Suspended {
		add(Irregularity{
			Type:         IrregularitySuspendedEmployee,
			Severity:     SeverityHigh,
			CurrentValue: item.NetPay,
			Description:  "employee is suspended during the period and excluded from disbursement",
		})
	}

	return found
}

// spike compares current against a trailing average. Without a usable
// baseline it only raises an info flag above the configured floor.
func (d Detector) spike(t IrregularityType, severity Severity, label string, current, average decimal.Decimal, threshold decimal.Decimal) (Irregularity, bool) {
	if !average.IsPositive() {
		if current.GreaterThan(d.cfg.Thresholds.NoBaselineFloor) {
			return Irregularity{
				Type:         t,
				Severity:     SeverityInfo,
				CurrentValue: current,
				Description:  fmt.Sprintf("%s of %s has no prior baseline", label, current.StringFixed(2)),
			}, true
		}
		return Irregularity{}, false
	}
	variance := variancePct(current, average)
	if !variance.GreaterThan(threshold) {
		return Irregularity{}, false
	}
	return Irregularity{
		Type:          t,
		Severity:      severity,
		CurrentValue:  current,
		BaselineValue: decimal.NewNullDecimal(average),
		VariancePct:   decimal.NewNullDecimal(variance),
		Description:   fmt.Sprintf("%s is %s%% above the trailing average of %s", label, variance.StringFixed(2), average.StringFixed(2)),
	}, true
}

func deductionCheck(t IrregularityType, label string, amount decimal.Decimal, limit *decimal.Decimal) (Irregularity, bool) {
	if !amount.IsPositive() {
		return Irregularity{}, false
	}
	irr := Irregularity{
		Type:         t,
		Severity:     SeverityInfo,
		CurrentValue: amount,
		Description:  fmt.Sprintf("%s of %s applied", label, amount.StringFixed(2)),
	}
	if limit != nil && amount.GreaterThan(*limit) {
		irr.Severity = SeverityMedium
		irr.BaselineValue = decimal.NewNullDecimal(*limit)
		irr.Description = fmt.Sprintf("%s of %s exceeds the cap of %s", label, amount.StringFixed(2), limit.StringFixed(2))
	}
	return irr, true
}

func variancePct(current, baseline decimal.Decimal) decimal.Decimal {
	return current.Sub(baseline).Div(baseline).Mul(hundred).Round(2)
}

func IrregularityID(runID, employeeID uuid.UUID, t IrregularityType) uuid.UUID {
	return uuid.NewSHA1(runID, []byte("irregularity:"+employeeID.String()+":"+string(t)))
}

func ItemID(runID, employeeID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(runID, []byte("item:"+employeeID.String()))
}

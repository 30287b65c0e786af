package payroll

import (
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
)

// Computation is the joined output of the pipeline for one run.
type Computation struct {
	Items          []Item
	Irregularities []Irregularity
	Failures       []ComputationFailure
}

// Aggregate sums items into run totals. Net covers every item; DisbursableNet
// leaves out items excluded from disbursement.
func Aggregate(c Computation) (Totals, int, error) {
	if len(c.Items) == 0 && len(c.Failures) == 0 {
		return Totals{}, 0, payrollerrors.ErrEmptyRun
	}

	var t Totals
	for _, item := range c.Items {
		t.BaseSalary = t.BaseSalary.Add(item.ProratedBaseSalary)
		t.Allowances = t.Allowances.Add(item.AllowancesTotal)
		t.Overtime = t.Overtime.Add(item.OvertimeAmount)
		t.Commission = t.Commission.Add(item.CommissionAmount)
		t.Gross = t.Gross.Add(item.GrossPay)
		t.Deductions = t.Deductions.Add(item.TotalDeductions)
		t.Net = t.Net.Add(item.NetPay)
		if !item.ExcludedFromDisbursement {
			t.DisbursableNet = t.DisbursableNet.Add(item.NetPay)
		}
	}
	return t, CountExceptions(c.Irregularities), nil
}

// CountExceptions counts distinct employees with at least one unresolved irregularity.
func CountExceptions(irregularities []Irregularity) int {
	seen := make(map[uuid.UUID]struct{})
	for _, irr := range irregularities {
		if irr.Status.Unresolved() {
			seen[irr.EmployeeID] = struct{}{}
		}
	}
	return len(seen)
}

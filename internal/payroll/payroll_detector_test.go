package payroll_test

import (
	"testing"

	"go-payroll/internal/payroll"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem() payroll.Item {
	return payroll.Item{
		ID:                 uuid.New(),
		RunID:              uuid.New(),
		CompanyID:          uuid.New(),
		EmployeeID:         uuid.New(),
		Currency:           "USD",
		BaseSalary:         dec("10000"),
		ProratedBaseSalary: dec("10000"),
		ProrationFactor:    dec("1"),
		GrossPay:           dec("10000"),
		NetPay:             dec("8000"),
	}
}

func types(irregs []payroll.Irregularity) []payroll.IrregularityType {
	out := make([]payroll.IrregularityType, len(irregs))
	for i, irr := range irregs {
		out[i] = irr.Type
	}
	return out
}

func TestDetector_NegativeNetPayRequiresManager(t *testing.T) {
	item := newItem()
	item.NetPay = dec("-1960")

	irregs := payroll.NewDetector(newConfig(t)).Detect(item, payroll.Baseline{})

	require.Len(t, irregs, 1)
	assert.Equal(t, payroll.IrregularityNegativeNetPay, irregs[0].Type)
	assert.Equal(t, payroll.SeverityCritical, irregs[0].Severity)
	assert.True(t, irregs[0].RequiresManagerAction())
	assert.Equal(t, payroll.IrregularityPending, irregs[0].Status)
}

func TestDetector_OvertimeSpike(t *testing.T) {
	cfg := newConfig(t)
	baseline := payroll.Baseline{Periods: 3, AverageOvertime: dec("100")}

	t.Run("above threshold", func(t *testing.T) {
		item := newItem()
		item.OvertimeAmount = dec("400")

		irregs := payroll.NewDetector(cfg).Detect(item, baseline)

		require.Len(t, irregs, 1)
		assert.Equal(t, payroll.SeverityHigh, irregs[0].Severity)
		assert.True(t, dec("300").Equal(irregs[0].VariancePct.Decimal))
		assert.True(t, dec("100").Equal(irregs[0].BaselineValue.Decimal))
	})

	t.Run("within threshold", func(t *testing.T) {
		item := newItem()
		item.OvertimeAmount = dec("250")

		assert.Empty(t, payroll.NewDetector(cfg).Detect(item, baseline))
	})

	t.Run("no baseline is informational", func(t *testing.T) {
		item := newItem()
		item.OvertimeAmount = dec("500")

		irregs := payroll.NewDetector(cfg).Detect(item, payroll.Baseline{})

		require.Len(t, irregs, 1)
		assert.Equal(t, payroll.SeverityInfo, irregs[0].Severity)
		assert.False(t, irregs[0].BaselineValue.Valid)
	})
}

func TestDetector_CommissionSpike(t *testing.T) {
	cfg := newConfig(t)
	baseline := payroll.Baseline{Periods: 3, AverageCommission: dec("800")}

	t.Run("above threshold", func(t *testing.T) {
		item := newItem()
		item.CommissionAmount = dec("2000")

		irregs := payroll.NewDetector(cfg).Detect(item, baseline)

		require.Len(t, irregs, 1)
		assert.Equal(t, payroll.IrregularityCommissionSpike, irregs[0].Type)
		assert.Equal(t, payroll.SeverityMedium, irregs[0].Severity)
		assert.False(t, irregs[0].RequiresManagerAction())
		assert.True(t, dec("150").Equal(irregs[0].VariancePct.Decimal), irregs[0].VariancePct.Decimal.String())
		assert.True(t, dec("800").Equal(irregs[0].BaselineValue.Decimal))
	})

	t.Run("within threshold", func(t *testing.T) {
		item := newItem()
		item.CommissionAmount = dec("1600")

		assert.Empty(t, payroll.NewDetector(cfg).Detect(item, baseline), "exactly 100% is not above the threshold")
	})

	t.Run("no baseline is informational", func(t *testing.T) {
		item := newItem()
		item.CommissionAmount = dec("1200")

		irregs := payroll.NewDetector(cfg).Detect(item, payroll.Baseline{})

		require.Len(t, irregs, 1)
		assert.Equal(t, payroll.IrregularityCommissionSpike, irregs[0].Type)
		assert.Equal(t, payroll.SeverityInfo, irregs[0].Severity)
		assert.False(t, irregs[0].BaselineValue.Valid)
		assert.False(t, irregs[0].VariancePct.Valid)
	})
}

func TestDetector_SalarySpike(t *testing.T) {
	cfg := newConfig(t)
	prev := dec("10000")

	item := newItem()
	item.BaseSalary = dec("11500")

	irregs := payroll.NewDetector(cfg).Detect(item, payroll.Baseline{Periods: 1, PreviousBaseSalary: &prev})
	require.Len(t, irregs, 1)
	assert.Equal(t, payroll.IrregularitySalarySpike, irregs[0].Type)
	assert.Equal(t, payroll.SeverityMedium, irregs[0].Severity)
	assert.True(t, dec("15").Equal(irregs[0].VariancePct.Decimal))

	assert.Empty(t, payroll.NewDetector(cfg).Detect(item, payroll.Baseline{}), "no history, no salary comparison")
}

func TestDetector_DeductionCaps(t *testing.T) {
	cfg := newConfig(t, func(c *payroll.Config) { c.Thresholds.LoanDeductionCap = decPtr("300") })

	item := newItem()
	item.LoanDeduction = dec("500")
	item.PenaltyDeduction = dec("20")

	irregs := payroll.NewDetector(cfg).Detect(item, payroll.Baseline{})

	require.Len(t, irregs, 2)
	assert.Equal(t, payroll.IrregularityLoanDeduction, irregs[0].Type)
	assert.Equal(t, payroll.SeverityMedium, irregs[0].Severity)
	assert.Equal(t, payroll.IrregularityPenaltyDeduction, irregs[1].Type)
	assert.Equal(t, payroll.SeverityInfo, irregs[1].Severity)
}

func TestDetector_OrderAndDeterministicIDs(t *testing.T) {
	cfg := newConfig(t)
	item := newItem()
	item.NetPay = dec("-5")
	item.ProratedForHire = true
	item.ProrationFactor = dec("0.5")
	item.AbsenceDeduction = dec("100")
	item.UnpaidLeaveDays = 12
	item.Suspended = true
	item.OvertimeAmount = dec("50")

	first := payroll.NewDetector(cfg).Detect(item, payroll.Baseline{})
	second := payroll.NewDetector(cfg).Detect(item, payroll.Baseline{})

	assert.Equal(t, []payroll.IrregularityType{
		payroll.IrregularityOvertimeSpike,
		payroll.IrregularityNegativeNetPay,
		payroll.IrregularityNewHireProrated,
		payroll.IrregularityAbsenceDeduction,
		payroll.IrregularityExtendedUnpaidLeave,
		payroll.IrregularitySuspendedEmployee,
	}, types(first))
	assert.Equal(t, first, second)
	for i, irr := range first {
		assert.Equal(t, i+1, irr.Seq)
		assert.Equal(t, payroll.IrregularityID(item.RunID, item.EmployeeID, irr.Type), irr.ID)
	}
}

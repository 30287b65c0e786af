package payroll_test

import (
	"testing"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	a := newItem()
	a.AllowancesTotal = dec("500")
	a.GrossPay = dec("10500")
	a.TotalDeductions = dec("2500")
	a.NetPay = dec("8000")

	b := newItem()
	b.ProratedBaseSalary = dec("4000")
	b.OvertimeAmount = dec("250.50")
	b.GrossPay = dec("4250.50")
	b.TotalDeductions = dec("300")
	b.NetPay = dec("3950.50")
	b.Suspended = true
	b.ExcludedFromDisbursement = true

	pending := payroll.Irregularity{EmployeeID: a.EmployeeID, Status: payroll.IrregularityPending}
	resolved := payroll.Irregularity{EmployeeID: b.EmployeeID, Status: payroll.IrregularityResolved}
	alsoA := payroll.Irregularity{EmployeeID: a.EmployeeID, Status: payroll.IrregularityEscalated}

	totals, exceptions, err := payroll.Aggregate(payroll.Computation{
		Items:          []payroll.Item{a, b},
		Irregularities: []payroll.Irregularity{pending, alsoA, resolved},
	})

	require.NoError(t, err)
	assert.True(t, dec("14000").Equal(totals.BaseSalary))
	assert.True(t, dec("14750.50").Equal(totals.Gross))
	assert.True(t, dec("2800").Equal(totals.Deductions))
	assert.True(t, dec("11950.50").Equal(totals.Net))
	assert.True(t, totals.Gross.Sub(totals.Deductions).Equal(totals.Net))
	assert.True(t, dec("8000").Equal(totals.DisbursableNet))
	assert.Equal(t, 1, exceptions)
}

func TestAggregate_EmptyRun(t *testing.T) {
	_, _, err := payroll.Aggregate(payroll.Computation{})
	assert.ErrorIs(t, err, payrollerrors.ErrEmptyRun)

	_, _, err = payroll.Aggregate(payroll.Computation{
		Failures: []payroll.ComputationFailure{{EmployeeID: uuid.New(), Code: payroll.FailureInvalidProfile}},
	})
	assert.NoError(t, err, "a run of failures is still reviewable")
}

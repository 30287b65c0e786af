package payroll_test

import (
	"testing"
	"time"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_FullMonth(t *testing.T) {
	cfg := newConfig(t)
	profile := newProfile("25000")
	profile.Allowances = []payroll.NamedAmount{
		{Name: "Housing", Amount: dec("3000")},
		{Name: "Transport", Amount: dec("1500")},
	}

	comp, err := payroll.NewResolver(cfg).Resolve(profile, payroll.AttendanceAggregate{}, march2026(t))

	require.NoError(t, err)
	assert.True(t, dec("1").Equal(comp.ProrationFactor))
	assert.True(t, dec("25000").Equal(comp.ProratedBaseSalary))
	assert.False(t, comp.ProratedForHire)
	assert.Len(t, comp.Allowances, 2)
	assert.Equal(t, "USD", comp.Currency)
}

func TestResolver_Proration(t *testing.T) {
	cfg := newConfig(t)
	april := april2026(t)

	t.Run("hire on day 15 of a 30 day month", func(t *testing.T) {
		profile := newProfile("30000")
		profile.HireDate = date(2026, time.April, 15)
		profile.Allowances = []payroll.NamedAmount{{Name: "Meal", Amount: dec("1000")}}

		comp, err := payroll.NewResolver(cfg).Resolve(profile, payroll.AttendanceAggregate{}, april)

		require.NoError(t, err)
		assert.True(t, dec("0.5").Equal(comp.ProrationFactor), comp.ProrationFactor.String())
		assert.True(t, dec("15000").Equal(comp.ProratedBaseSalary))
		assert.True(t, dec("500").Equal(comp.Allowances[0].Amount))
		assert.True(t, comp.ProratedForHire)
	})

	t.Run("hire on period start is not prorated", func(t *testing.T) {
		profile := newProfile("30000")
		profile.HireDate = date(2026, time.April, 1)

		comp, err := payroll.NewResolver(cfg).Resolve(profile, payroll.AttendanceAggregate{}, april)

		require.NoError(t, err)
		assert.True(t, dec("1").Equal(comp.ProrationFactor))
		assert.False(t, comp.ProratedForHire)
	})

	t.Run("termination mid period counts through termination day", func(t *testing.T) {
		profile := newProfile("30000")
		term := date(2026, time.April, 10)
		profile.TerminationDate = &term

		comp, err := payroll.NewResolver(cfg).Resolve(profile, payroll.AttendanceAggregate{}, april)

		require.NoError(t, err)
		assert.True(t, dec("0.333333").Equal(comp.ProrationFactor), comp.ProrationFactor.String())
		assert.True(t, dec("9999.99").Equal(comp.ProratedBaseSalary), comp.ProratedBaseSalary.String())
		assert.True(t, comp.ProratedForTermination)
	})

	t.Run("hire on the last day earns that day", func(t *testing.T) {
		profile := newProfile("30000")
		profile.HireDate = date(2026, time.April, 30)

		comp, err := payroll.NewResolver(cfg).Resolve(profile, payroll.AttendanceAggregate{}, april)

		require.NoError(t, err)
		assert.True(t, dec("0.033333").Equal(comp.ProrationFactor), comp.ProrationFactor.String())
		assert.True(t, dec("999.99").Equal(comp.ProratedBaseSalary), comp.ProratedBaseSalary.String())
		assert.True(t, comp.ProratedForHire)
	})

	t.Run("hired and terminated on the same day", func(t *testing.T) {
		profile := newProfile("30000")
		profile.HireDate = date(2026, time.April, 10)
		term := date(2026, time.April, 10)
		profile.TerminationDate = &term

		comp, err := payroll.NewResolver(cfg).Resolve(profile, payroll.AttendanceAggregate{}, april)

		require.NoError(t, err)
		assert.True(t, dec("0.033333").Equal(comp.ProrationFactor), comp.ProrationFactor.String())
	})

	t.Run("no worked days", func(t *testing.T) {
		profile := newProfile("30000")
		profile.HireDate = date(2026, time.May, 4)

		_, err := payroll.NewResolver(cfg).Resolve(profile, payroll.AttendanceAggregate{}, april)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidProfile)
	})
}

func TestResolver_OvertimeCommissionAndDeductions(t *testing.T) {
	cfg := newConfig(t)
	profile := newProfile("17600")
	profile.Commission = &payroll.Commission{Rate: dec("0.05"), SalesAmount: dec("40000")}
	profile.Loan = &payroll.Loan{MonthlyInstallment: dec("2000"), RemainingBalance: dec("750")}
	profile.Penalties = []payroll.NamedAmount{{Name: "Late", Amount: dec("100")}}

	attendance := payroll.AttendanceAggregate{
		OvertimeMinutes:        600,
		AbsenceDays:            2,
		AbsenceDeductionPerDay: dec("150"),
		UnpaidLeaveDays:        3,
	}

	comp, err := payroll.NewResolver(cfg).Resolve(profile, attendance, march2026(t))

	require.NoError(t, err)
	// 17600 * 600 * 1.5 / (22 * 8 * 60)
	assert.True(t, dec("1500").Equal(comp.OvertimeAmount), comp.OvertimeAmount.String())
	assert.True(t, dec("2000").Equal(comp.CommissionAmount))
	assert.True(t, dec("750").Equal(comp.LoanInstallment), "installment is capped by the remaining balance")
	assert.True(t, dec("300").Equal(comp.AbsenceDeduction))
	// 17600 * 3 / 31
	assert.True(t, dec("1703.23").Equal(comp.UnpaidLeaveDeduction), comp.UnpaidLeaveDeduction.String())
}

func TestResolver_Suspension(t *testing.T) {
	cfg := newConfig(t)
	period := march2026(t)

	profile := newProfile("20000")
	profile.Allowances = []payroll.NamedAmount{
		{Name: "Housing", Amount: dec("2000"), Vested: true},
		{Name: "Transport", Amount: dec("800")},
	}
	profile.Commission = &payroll.Commission{Rate: dec("0.1"), SalesAmount: dec("10000")}
	profile.Suspension = &payroll.Suspension{Start: date(2026, time.February, 20)}

	t.Run("without pay", func(t *testing.T) {
		comp, err := payroll.NewResolver(cfg).Resolve(profile, payroll.AttendanceAggregate{OvertimeMinutes: 120, UnpaidLeaveDays: 2}, period)

		require.NoError(t, err)
		assert.True(t, comp.Suspended)
		assert.True(t, comp.SuspendedWithoutPay)
		assert.True(t, comp.ProratedBaseSalary.IsZero())
		assert.True(t, comp.OvertimeAmount.IsZero())
		assert.True(t, comp.CommissionAmount.IsZero())
		assert.True(t, comp.UnpaidLeaveDeduction.IsZero())
		assert.True(t, dec("2000").Equal(comp.Allowances[0].Amount), "vested allowance is kept")
		assert.True(t, comp.Allowances[1].Amount.IsZero())
	})

	t.Run("with pay", func(t *testing.T) {
		paid := profile
		paid.Suspension = &payroll.Suspension{Start: date(2026, time.March, 3), WithPay: true}

		comp, err := payroll.NewResolver(cfg).Resolve(paid, payroll.AttendanceAggregate{}, period)

		require.NoError(t, err)
		assert.True(t, comp.Suspended)
		assert.False(t, comp.SuspendedWithoutPay)
		assert.True(t, dec("20000").Equal(comp.ProratedBaseSalary))
	})

	t.Run("suspension ended before period", func(t *testing.T) {
		ended := profile
		end := date(2026, time.February, 27)
		ended.Suspension = &payroll.Suspension{Start: date(2026, time.February, 1), End: &end}

		comp, err := payroll.NewResolver(cfg).Resolve(ended, payroll.AttendanceAggregate{}, period)

		require.NoError(t, err)
		assert.False(t, comp.Suspended)
	})
}

func TestResolver_RejectsNegativeValues(t *testing.T) {
	cfg := newConfig(t)
	period := march2026(t)

	tests := []struct {
		name       string
		mutate     func(*payroll.CompensationProfile)
		attendance payroll.AttendanceAggregate
	}{
		{name: "negative base", mutate: func(p *payroll.CompensationProfile) { p.BaseSalary = dec("-1") }},
		{name: "negative allowance", mutate: func(p *payroll.CompensationProfile) {
			p.Allowances = []payroll.NamedAmount{{Name: "Housing", Amount: dec("-5")}}
		}},
		{name: "negative loan", mutate: func(p *payroll.CompensationProfile) {
			p.Loan = &payroll.Loan{MonthlyInstallment: dec("-1"), RemainingBalance: dec("10")}
		}},
		{name: "negative overtime minutes", attendance: payroll.AttendanceAggregate{OvertimeMinutes: -30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := newProfile("10000")
			if tt.mutate != nil {
				tt.mutate(&profile)
			}
			_, err := payroll.NewResolver(cfg).Resolve(profile, tt.attendance, period)
			assert.ErrorIs(t, err, payrollerrors.ErrInvalidProfile)
		})
	}
}

package payroll_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payrollYAML = `
file_version: 1
current: "2026.2"
configs:
  - version: "2026.1"
    currency: USD
    working_days_per_month: 22
    working_hours_per_day: 8
    tax:
      brackets:
        - {min_income: 0, rate: 0.1}
  - version: "2026.2"
    currency: USD
    currency_precision: 2
    working_days_per_month: 21
    working_hours_per_day: 8
    overtime_multiplier: 1.75
    tax:
      policy: marginal
      brackets:
        - {min_income: 0, max_income: 15000, rate: 0.1}
        - {min_income: 15000, rate: 0.2}
    statutory:
      social_insurance: {rate: 0.05, ceiling: 25300}
      pension: {rate: 0.02}
    thresholds:
      salary_spike_pct: 25
      loan_deduction_cap: 3000
`

func TestParseConfigStore(t *testing.T) {
	store, err := payroll.ParseConfigStore([]byte(payrollYAML))
	require.NoError(t, err)

	cur := store.Current()
	assert.Equal(t, "2026.2", cur.Version)
	assert.Equal(t, payroll.BracketPolicyMarginal, cur.Tax.Policy)
	assert.True(t, dec("1.75").Equal(cur.OvertimeMultiplier))
	assert.True(t, dec("25300").Equal(*cur.Statutory.SocialInsurance.Ceiling))
	assert.True(t, dec("25").Equal(cur.Thresholds.SalarySpikePct))
	assert.True(t, dec("200").Equal(cur.Thresholds.OvertimeSpikePct), "omitted thresholds fall back to defaults")
	assert.True(t, dec("3000").Equal(*cur.Thresholds.LoanDeductionCap))

	old, ok := store.Version("2026.1")
	require.True(t, ok)
	assert.Equal(t, payroll.BracketPolicyFlatTop, old.Tax.Policy)
	assert.True(t, dec("1.5").Equal(old.OvertimeMultiplier))
	assert.Equal(t, int32(2), old.CurrencyPrecision)
	assert.Equal(t, 3, old.BaselineWindow)

	_, ok = store.Version("2019.1")
	assert.False(t, ok)
}

func TestParseConfigStore_Invalid(t *testing.T) {
	tests := map[string]string{
		"file version": "file_version: 2\ncurrent: a\nconfigs: [{version: a, currency: USD, working_days_per_month: 22, working_hours_per_day: 8}]",
		"no configs":   "file_version: 1\ncurrent: a\n",
		"unknown current": "file_version: 1\ncurrent: b\n" +
			"configs: [{version: a, currency: USD, working_days_per_month: 22, working_hours_per_day: 8}]",
		"duplicate version": "file_version: 1\ncurrent: a\nconfigs:\n" +
			"  - {version: a, currency: USD, working_days_per_month: 22, working_hours_per_day: 8}\n" +
			"  - {version: a, currency: USD, working_days_per_month: 22, working_hours_per_day: 8}\n",
		"bad rate": "file_version: 1\ncurrent: a\nconfigs:\n" +
			"  - {version: a, currency: USD, working_days_per_month: 22, working_hours_per_day: 8, tax: {brackets: [{min_income: 0, rate: 1.5}]}}\n",
		"unordered brackets": "file_version: 1\ncurrent: a\nconfigs:\n" +
			"  - {version: a, currency: USD, working_days_per_month: 22, working_hours_per_day: 8, tax: {brackets: [{min_income: 100, rate: 0.1}, {min_income: 0, rate: 0.2}]}}\n",
		"not yaml": "file_version: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := payroll.ParseConfigStore([]byte(doc))
			assert.ErrorIs(t, err, payrollerrors.ErrInvalidConfig)
		})
	}
}

func TestLoadConfigStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payroll.yaml")
	require.NoError(t, os.WriteFile(path, []byte(payrollYAML), 0o600))

	store, err := payroll.LoadConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, "2026.2", store.Current().Version)

	_, err = payroll.LoadConfigStore(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigStore_ShippedFile(t *testing.T) {
	store, err := payroll.LoadConfigStore(payroll.DefaultConfigPath())
	require.NoError(t, err)

	cur := store.Current()
	assert.Equal(t, "2026.1", cur.Version)
	assert.Equal(t, payroll.BracketPolicyFlatTop, cur.Tax.Policy)
	assert.Equal(t, int32(2), cur.CurrencyPrecision)
	require.Len(t, cur.Tax.Brackets, 4)
	assert.Nil(t, cur.Tax.Brackets[3].MaxIncome)
	require.NotNil(t, cur.Thresholds.LoanDeductionCap)
	assert.True(t, dec("2000").Equal(*cur.Thresholds.LoanDeductionCap))

	prev, ok := store.Version("2025.1")
	require.True(t, ok)
	assert.Equal(t, payroll.BracketPolicyFlatTop, prev.Tax.Policy)
	assert.Nil(t, prev.Thresholds.LoanDeductionCap)
}

func TestParseConfigStore_ExplicitZerosAreKept(t *testing.T) {
	doc := `
file_version: 1
current: "2026.1"
configs:
  - version: "2026.1"
    currency: JPY
    currency_precision: 0
    working_days_per_month: 22
    working_hours_per_day: 8
    overtime_multiplier: 0
    tax:
      brackets:
        - {min_income: 0, rate: 0.1}
    thresholds:
      extended_unpaid_leave_days: 0
`
	store, err := payroll.ParseConfigStore([]byte(doc))
	require.NoError(t, err)

	cur := store.Current()
	assert.Equal(t, int32(0), cur.CurrencyPrecision)
	assert.True(t, cur.OvertimeMultiplier.IsZero(), cur.OvertimeMultiplier.String())
	assert.Equal(t, 0, cur.Thresholds.ExtendedUnpaidLeaveDays)
	assert.Equal(t, payroll.BracketPolicyFlatTop, cur.Tax.Policy, "omitted policy falls back to flat_top")
	assert.True(t, dec("200").Equal(cur.Thresholds.OvertimeSpikePct))
}

func TestNewConfigStore_ZeroPrecisionRoundsToWholeUnits(t *testing.T) {
	cfg := newConfig(t, func(c *payroll.Config) {
		c.Currency = "JPY"
		c.CurrencyPrecision = 0
	})
	assert.Equal(t, int32(0), cfg.CurrencyPrecision)

	profile := newProfile("300001")
	profile.Currency = "JPY"
	profile.HireDate = date(2026, time.April, 15)

	comp, err := payroll.NewResolver(cfg).Resolve(profile, payroll.AttendanceAggregate{}, april2026(t))
	require.NoError(t, err)
	assert.Equal(t, "150001", comp.ProratedBaseSalary.String())
}

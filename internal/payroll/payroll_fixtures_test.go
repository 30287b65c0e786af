package payroll_test

import (
	"testing"
	"time"

	"go-payroll/internal/payroll"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// baseConfig uses the three bracket table from the tax scenario with social
// insurance at 5% capped at 25,300 gross.
func baseConfig() payroll.Config {
	cfg := payroll.DefaultConfig()
	cfg.Version = "2026.1"
	cfg.Currency = "USD"
	cfg.WorkingDaysPerMonth = 22
	cfg.WorkingHoursPerDay = 8
	cfg.Tax = payroll.TaxConfig{
		Policy: payroll.BracketPolicyFlatTop,
		Brackets: []payroll.TaxBracket{
			{MinIncome: dec("0"), MaxIncome: decPtr("15000"), Rate: dec("0.10")},
			{MinIncome: dec("15000"), MaxIncome: decPtr("25000"), Rate: dec("0.15")},
			{MinIncome: dec("25000"), MaxIncome: decPtr("40000"), Rate: dec("0.225")},
		},
	}
	cfg.Statutory = payroll.StatutoryConfig{
		SocialInsurance: payroll.ContributionRule{Rate: dec("0.05"), Ceiling: decPtr("25300")},
	}
	return cfg
}

func newConfig(t *testing.T, mutate ...func(*payroll.Config)) payroll.Config {
	t.Helper()
	cfg := baseConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	store, err := payroll.NewConfigStore(cfg.Version, cfg)
	require.NoError(t, err)
	return store.Current()
}

func march2026(t *testing.T) payroll.Period {
	t.Helper()
	p, err := payroll.NewMonthlyPeriod(2026, time.March)
	require.NoError(t, err)
	return p
}

func april2026(t *testing.T) payroll.Period {
	t.Helper()
	p, err := payroll.NewMonthlyPeriod(2026, time.April)
	require.NoError(t, err)
	return p
}

func newProfile(base string) payroll.CompensationProfile {
	return payroll.CompensationProfile{
		EmployeeID:   uuid.New(),
		EmployeeName: "Dana Kusuma",
		BaseSalary:   dec(base),
		Currency:     "USD",
		HireDate:     date(2020, time.January, 6),
	}
}

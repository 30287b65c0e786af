package payroll

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type BracketPolicy string

const (
	// BracketPolicyFlatTop applies the rate of the containing bracket to the whole income.
	BracketPolicyFlatTop BracketPolicy = "flat_top"
	// BracketPolicyMarginal taxes each slice of income at its own bracket rate.
	BracketPolicyMarginal BracketPolicy = "marginal"
)

// TaxBracket covers [MinIncome, MaxIncome). A nil MaxIncome is unbounded.
type TaxBracket struct {
	MinIncome decimal.Decimal  `yaml:"min_income" json:"min_income"`
	MaxIncome *decimal.Decimal `yaml:"max_income" json:"max_income,omitempty"`
	Rate      decimal.Decimal  `yaml:"rate" json:"rate"`
}

func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.MinIncome) {
		return false
	}
	return b.MaxIncome == nil || income.LessThan(*b.MaxIncome)
}

type TaxConfig struct {
	Policy   BracketPolicy `yaml:"policy" json:"policy"`
	Brackets []TaxBracket  `yaml:"brackets" json:"brackets"`
}

// ContributionRule is a rate applied to gross pay, capped at Ceiling when set.
type ContributionRule struct {
	Rate    decimal.Decimal  `yaml:"rate" json:"rate"`
	Ceiling *decimal.Decimal `yaml:"ceiling" json:"ceiling,omitempty"`
}

type StatutoryConfig struct {
	SocialInsurance ContributionRule `yaml:"social_insurance" json:"social_insurance"`
	HealthInsurance ContributionRule `yaml:"health_insurance" json:"health_insurance"`
	Pension         ContributionRule `yaml:"pension" json:"pension"`
}

type Thresholds struct {
	OvertimeSpikePct        decimal.Decimal  `yaml:"overtime_spike_pct" json:"overtime_spike_pct"`
	SalarySpikePct          decimal.Decimal  `yaml:"salary_spike_pct" json:"salary_spike_pct"`
	CommissionSpikePct      decimal.Decimal  `yaml:"commission_spike_pct" json:"commission_spike_pct"`
	NoBaselineFloor         decimal.Decimal  `yaml:"no_baseline_floor" json:"no_baseline_floor"`
	LoanDeductionCap        *decimal.Decimal `yaml:"loan_deduction_cap" json:"loan_deduction_cap,omitempty"`
	PenaltyDeductionCap     *decimal.Decimal `yaml:"penalty_deduction_cap" json:"penalty_deduction_cap,omitempty"`
	AbsenceDeductionCap     *decimal.Decimal `yaml:"absence_deduction_cap" json:"absence_deduction_cap,omitempty"`
	ExtendedUnpaidLeaveDays int              `yaml:"extended_unpaid_leave_days" json:"extended_unpaid_leave_days"`
}

// Config is one immutable version of the payroll rules. It is passed by value
// and never mutated after loading.
type Config struct {
	Version             string          `yaml:"version" json:"version"`
	Currency            string          `yaml:"currency" json:"currency"`
	CurrencyPrecision   int32           `yaml:"currency_precision" json:"currency_precision"`
	WorkingDaysPerMonth int             `yaml:"working_days_per_month" json:"working_days_per_month"`
	WorkingHoursPerDay  int             `yaml:"working_hours_per_day" json:"working_hours_per_day"`
	OvertimeMultiplier  decimal.Decimal `yaml:"overtime_multiplier" json:"overtime_multiplier"`
	BaselineWindow      int             `yaml:"baseline_window" json:"baseline_window"`
	Tax                 TaxConfig       `yaml:"tax" json:"tax"`
	Statutory           StatutoryConfig `yaml:"statutory" json:"statutory"`
	Thresholds          Thresholds      `yaml:"thresholds" json:"thresholds"`
}

// DefaultThresholds returns the detector thresholds used when a config file omits them.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OvertimeSpikePct:        decimal.NewFromInt(200),
		SalarySpikePct:          decimal.NewFromInt(10),
		CommissionSpikePct:      decimal.NewFromInt(100),
		NoBaselineFloor:         decimal.Zero,
		ExtendedUnpaidLeaveDays: 10,
	}
}

// DefaultConfig holds the values a config file falls back to for keys it
// omits. A key that is present, even with a zero value, is taken as declared.
func DefaultConfig() Config {
	return Config{
		CurrencyPrecision:  2,
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
		BaselineWindow:     3,
		Tax:                TaxConfig{Policy: BracketPolicyFlatTop},
		Thresholds:         DefaultThresholds(),
	}
}

// UnmarshalYAML decodes over DefaultConfig so omitted keys keep their
// defaults and explicit zeros survive.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	p := plain(DefaultConfig())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Config(p)
	return nil
}

func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Version) == "" {
		problems = append(problems, "version is required")
	}
	if len(c.Currency) != 3 {
		problems = append(problems, "currency must be an ISO 4217 code")
	}
	if c.CurrencyPrecision < 0 || c.CurrencyPrecision > 4 {
		problems = append(problems, "currency_precision must be between 0 and 4")
	}
	if c.WorkingDaysPerMonth <= 0 || c.WorkingHoursPerDay <= 0 {
		problems = append(problems, "working_days_per_month and working_hours_per_day must be positive")
	}
	if c.OvertimeMultiplier.IsNegative() {
		problems = append(problems, "overtime_multiplier cannot be negative")
	}
	if c.BaselineWindow < 0 {
		problems = append(problems, "baseline_window cannot be negative")
	}
	if c.Thresholds.ExtendedUnpaidLeaveDays < 0 {
		problems = append(problems, "extended_unpaid_leave_days cannot be negative")
	}
	switch c.Tax.Policy {
	case BracketPolicyFlatTop, BracketPolicyMarginal:
	default:
		problems = append(problems, fmt.Sprintf("unknown tax policy %q", c.Tax.Policy))
	}
	for i, b := range c.Tax.Brackets {
		if b.MinIncome.IsNegative() {
			problems = append(problems, fmt.Sprintf("bracket %d: min_income cannot be negative", i))
		}
		if b.MaxIncome != nil && !b.MaxIncome.GreaterThan(b.MinIncome) {
			problems = append(problems, fmt.Sprintf("bracket %d: max_income must exceed min_income", i))
		}
		if !validRate(b.Rate) {
			problems = append(problems, fmt.Sprintf("bracket %d: rate must be between 0 and 1", i))
		}
		if i > 0 && !b.MinIncome.GreaterThan(c.Tax.Brackets[i-1].MinIncome) {
			problems = append(problems, fmt.Sprintf("bracket %d: brackets must be ordered by min_income", i))
		}
	}
	for _, contribution := range []struct {
		name string
		rule ContributionRule
	}{
		{"social_insurance", c.Statutory.SocialInsurance},
		{"health_insurance", c.Statutory.HealthInsurance},
		{"pension", c.Statutory.Pension},
	} {
		if !validRate(contribution.rule.Rate) {
			problems = append(problems, fmt.Sprintf("%s: rate must be between 0 and 1", contribution.name))
		}
		if contribution.rule.Ceiling != nil && contribution.rule.Ceiling.IsNegative() {
			problems = append(problems, fmt.Sprintf("%s: ceiling cannot be negative", contribution.name))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: version %q: %s", payrollerrors.ErrInvalidConfig, c.Version, strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) round(d decimal.Decimal) decimal.Decimal {
	return d.Round(c.CurrencyPrecision)
}

func validRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}

// ConfigStore serves the current rules and any version a past run was computed with.
type ConfigStore interface {
	Current() Config
	Version(version string) (Config, bool)
}

type configStore struct {
	current  string
	versions map[string]Config
}

// NewConfigStore validates every config as given. The current version must
// be present.
func NewConfigStore(current string, configs ...Config) (ConfigStore, error) {
	store := &configStore{current: current, versions: make(map[string]Config, len(configs))}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, dup := store.versions[cfg.Version]; dup {
			return nil, fmt.Errorf("%w: duplicate version %q", payrollerrors.ErrInvalidConfig, cfg.Version)
		}
		store.versions[cfg.Version] = cfg
	}
	if _, ok := store.versions[current]; !ok {
		return nil, fmt.Errorf("%w: current version %q is not defined", payrollerrors.ErrInvalidConfig, current)
	}
	return store, nil
}

func (s *configStore) Current() Config {
	return s.versions[s.current]
}

func (s *configStore) Version(version string) (Config, bool) {
	cfg, ok := s.versions[version]
	return cfg, ok
}

const configFileVersion = 1

type configFile struct {
	FileVersion int      `yaml:"file_version"`
	Current     string   `yaml:"current"`
	Configs     []Config `yaml:"configs"`
}

// DefaultConfigPath walks up from the working directory looking for config/payroll.yaml.
func DefaultConfigPath() string {
	dir, err := os.Getwd()
	if err != nil {
		return filepath.Join("config", "payroll.yaml")
	}
	for {
		candidate := filepath.Join(dir, "config", "payroll.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Join("config", "payroll.yaml")
		}
		dir = parent
	}
}

func LoadConfigStore(path string) (ConfigStore, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payroll config: %w", err)
	}
	return ParseConfigStore(b)
}

func ParseConfigStore(b []byte) (ConfigStore, error) {
	var f configFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", payrollerrors.ErrInvalidConfig, err)
	}
	if f.FileVersion != configFileVersion {
		return nil, fmt.Errorf("%w: unsupported file_version %d", payrollerrors.ErrInvalidConfig, f.FileVersion)
	}
	if len(f.Configs) == 0 {
		return nil, fmt.Errorf("%w: no configs defined", payrollerrors.ErrInvalidConfig)
	}
	return NewConfigStore(f.Current, f.Configs...)
}

package compensation

import (
	"context"

	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Source assembles payroll.CompensationProfile snapshots from the employee,
// salary, pay component and suspension tables.
type Source struct {
	repo   Repository
	logger *zap.Logger
}

var _ payroll.CompensationSource = (*Source)(nil)

func NewSource(repo Repository, logger ...*zap.Logger) *Source {
	l := zap.L().Named("compensation.source")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compensation.source")
	}
	return &Source{repo: repo, logger: l}
}

// ListProfiles returns one profile per employee active in the period, ordered
// by employee id. Employees without a salary in force are skipped and logged.
func (s *Source) ListProfiles(ctx context.Context, companyID uuid.UUID, departmentID *uuid.UUID, period payroll.Period) ([]payroll.CompensationProfile, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employees, err := s.repo.FindEmployeesForPeriod(ctx, companyID.String(), departmentID, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}

	salaries, err := s.repo.FindSalariesInForce(ctx, ids, period.End)
	if err != nil {
		return nil, err
	}
	salaryByEmployee := make(map[uuid.UUID]Salary, len(salaries))
	for _, sal := range salaries {
		salaryByEmployee[sal.EmployeeID] = sal
	}

	components, err := s.repo.FindComponentsForPeriod(ctx, ids, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	componentsByEmployee := make(map[uuid.UUID][]PayComponent)
	for _, c := range components {
		componentsByEmployee[c.EmployeeID] = append(componentsByEmployee[c.EmployeeID], c)
	}

	suspensions, err := s.repo.FindSuspensionsForPeriod(ctx, ids, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	suspensionByEmployee := make(map[uuid.UUID]Suspension)
	for _, sus := range suspensions {
		if cur, ok := suspensionByEmployee[sus.EmployeeID]; !ok || sus.StartDate.After(cur.StartDate) {
			suspensionByEmployee[sus.EmployeeID] = sus
		}
	}

	profiles := make([]payroll.CompensationProfile, 0, len(employees))
	for _, e := range employees {
		salary, ok := salaryByEmployee[e.ID]
		if !ok {
			log.Warn("employee skipped: no salary in force",
				zap.String("employee_id", e.ID.String()),
				zap.String("period", period.String()),
			)
			continue
		}

		profile := payroll.CompensationProfile{
			EmployeeID:      e.ID,
			EmployeeName:    e.FullName,
			BaseSalary:      salary.BaseSalary,
			Currency:        salary.Currency,
			HireDate:        e.HireDate.UTC(),
			TerminationDate: utcPtr(e.TerminationDate),
		}
		applyComponents(&profile, componentsByEmployee[e.ID])

		if sus, ok := suspensionByEmployee[e.ID]; ok {
			profile.Suspension = &payroll.Suspension{
				Start:   sus.StartDate.UTC(),
				End:     utcPtr(sus.EndDate),
				WithPay: sus.WithPay,
			}
		}

		profiles = append(profiles, profile)
	}

	log.Debug("compensation profiles loaded",
		zap.String("company_id", companyID.String()),
		zap.Int("employees", len(employees)),
		zap.Int("profiles", len(profiles)),
	)
	return profiles, nil
}

// applyComponents folds component rows into the profile. Several loans add up;
// several commission rows sum their sales and keep the newest row's rate.
func applyComponents(p *payroll.CompensationProfile, components []PayComponent) {
	var commissionFrom PayComponent
	for _, c := range components {
		switch c.Kind {
		case KindAllowance:
			p.Allowances = append(p.Allowances, payroll.NamedAmount{Name: c.Name, Amount: c.Amount, Vested: c.Vested})
		case KindFixedDeduction:
			p.FixedDeductions = append(p.FixedDeductions, payroll.NamedAmount{Name: c.Name, Amount: c.Amount})
		case KindPenalty:
			p.Penalties = append(p.Penalties, payroll.NamedAmount{Name: c.Name, Amount: c.Amount})
		case KindLoan:
			if p.Loan == nil {
				p.Loan = &payroll.Loan{}
			}
			p.Loan.MonthlyInstallment = p.Loan.MonthlyInstallment.Add(c.Amount)
			p.Loan.RemainingBalance = p.Loan.RemainingBalance.Add(c.RemainingBalance)
		case KindCommission:
			if p.Commission == nil {
				p.Commission = &payroll.Commission{Rate: c.Rate}
				commissionFrom = c
			} else if c.EffectiveFrom.After(commissionFrom.EffectiveFrom) {
				p.Commission.Rate = c.Rate
				commissionFrom = c
			}
			p.Commission.SalesAmount = p.Commission.SalesAmount.Add(c.Amount)
		}
	}
}

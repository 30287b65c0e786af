package compensation

import (
	"context"
	"database/sql"
	"time"

	compensationerrors "go-payroll/internal/compensation/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=compensation_service.go -destination=mock/compensation_service_mock.go -package=mock
type Service interface {
	CreateSalary(ctx context.Context, companyID string, req CreateSalaryRequest) (SalaryResponse, error)
	GetAllSalaries(ctx context.Context, companyID string) ([]SalaryResponse, error)
	GetSalaryByID(ctx context.Context, companyID, id string) (SalaryResponse, error)
	DeleteSalary(ctx context.Context, companyID, id string) error
	CreateComponent(ctx context.Context, companyID, employeeID string, req CreateComponentRequest) (ComponentResponse, error)
	GetComponents(ctx context.Context, companyID, employeeID string) ([]ComponentResponse, error)
	CreateSuspension(ctx context.Context, companyID, employeeID string, req CreateSuspensionRequest) (SuspensionResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("compensation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compensation.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateSalary(ctx context.Context, companyID string, req CreateSalaryRequest) (SalaryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	baseSalary, err := parseAmount(req.BaseSalary)
	if err != nil {
		return SalaryResponse{}, err
	}
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return SalaryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employee, err := qtx.FindEmployeeByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return SalaryResponse{}, notFoundAs(err, compensationerrors.ErrEmployeeNotFound)
	}

	salary := &Salary{
		ID:            uuid.New(),
		EmployeeID:    employee.ID,
		BaseSalary:    baseSalary,
		Currency:      req.Currency,
		EffectiveDate: effectiveDate,
	}
	if err := qtx.CreateSalary(ctx, salary); err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	created, err := qtx.FindSalaryByIDAndCompany(ctx, companyID, salary.ID.String())
	if err != nil {
		return SalaryResponse{}, notFoundAs(err, compensationerrors.ErrSalaryNotFound)
	}

	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	log.Info("salary created",
		zap.String("employee_id", employee.ID.String()),
		zap.String("effective_date", req.EffectiveDate),
	)
	return mapSalaryToResponse(*created), nil
}

func (s *service) GetAllSalaries(ctx context.Context, companyID string) ([]SalaryResponse, error) {
	salaries, err := s.repo.FindSalariesByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]SalaryResponse, len(salaries))
	for i, salary := range salaries {
		res[i] = mapSalaryToResponse(salary)
	}
	return res, nil
}

func (s *service) GetSalaryByID(ctx context.Context, companyID, id string) (SalaryResponse, error) {
	salary, err := s.repo.FindSalaryByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryResponse{}, notFoundAs(err, compensationerrors.ErrSalaryNotFound)
	}
	return mapSalaryToResponse(*salary), nil
}

func (s *service) DeleteSalary(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeleteSalary(ctx, companyID, id); err != nil {
		return notFoundAs(err, compensationerrors.ErrSalaryNotFound)
	}

	return tx.Commit()
}

func (s *service) CreateComponent(ctx context.Context, companyID, employeeID string, req CreateComponentRequest) (ComponentResponse, error) {
	kind := ComponentKind(req.Kind)
	if !kind.Valid() {
		return ComponentResponse{}, compensationerrors.ErrInvalidComponentKind
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return ComponentResponse{}, err
	}
	rate, err := parseOptionalAmount(req.Rate)
	if err != nil {
		return ComponentResponse{}, err
	}
	remaining, err := parseOptionalAmount(req.RemainingBalance)
	if err != nil {
		return ComponentResponse{}, err
	}
	from, err := parseDate(req.EffectiveFrom)
	if err != nil {
		return ComponentResponse{}, err
	}
	to, err := parseOptionalDate(req.EffectiveTo)
	if err != nil {
		return ComponentResponse{}, err
	}
	if to != nil && to.Before(from) {
		return ComponentResponse{}, compensationerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employee, err := qtx.FindEmployeeByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return ComponentResponse{}, notFoundAs(err, compensationerrors.ErrEmployeeNotFound)
	}

	component := &PayComponent{
		ID:               uuid.New(),
		EmployeeID:       employee.ID,
		Kind:             kind,
		Name:             req.Name,
		Amount:           amount,
		Rate:             rate,
		RemainingBalance: remaining,
		Vested:           req.Vested,
		EffectiveFrom:    from,
		EffectiveTo:      to,
	}
	if err := qtx.CreateComponent(ctx, component); err != nil {
		return ComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ComponentResponse{}, err
	}
	return mapComponentToResponse(*component), nil
}

func (s *service) GetComponents(ctx context.Context, companyID, employeeID string) ([]ComponentResponse, error) {
	employee, err := s.repo.FindEmployeeByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return nil, notFoundAs(err, compensationerrors.ErrEmployeeNotFound)
	}

	components, err := s.repo.FindComponentsByEmployee(ctx, employee.ID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]ComponentResponse, len(components))
	for i, c := range components {
		res[i] = mapComponentToResponse(c)
	}
	return res, nil
}

func (s *service) CreateSuspension(ctx context.Context, companyID, employeeID string, req CreateSuspensionRequest) (SuspensionResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return SuspensionResponse{}, err
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return SuspensionResponse{}, err
	}
	if end != nil && end.Before(start) {
		return SuspensionResponse{}, compensationerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SuspensionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employee, err := qtx.FindEmployeeByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return SuspensionResponse{}, notFoundAs(err, compensationerrors.ErrEmployeeNotFound)
	}

	suspension := &Suspension{
		ID:         uuid.New(),
		EmployeeID: employee.ID,
		StartDate:  start,
		EndDate:    end,
		WithPay:    req.WithPay,
		Reason:     req.Reason,
	}
	if err := qtx.CreateSuspension(ctx, suspension); err != nil {
		return SuspensionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SuspensionResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("employee suspended",
		zap.String("employee_id", employee.ID.String()),
		zap.Bool("with_pay", req.WithPay),
	)
	return mapSuspensionToResponse(*suspension), nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, compensationerrors.ErrInvalidAmount
	}
	return d, nil
}

func parseOptionalAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return parseAmount(raw)
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, compensationerrors.ErrInvalidDate
	}
	return t, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func mapSalaryToResponse(salary Salary) SalaryResponse {
	return SalaryResponse{
		ID:            salary.ID.String(),
		EmployeeID:    salary.EmployeeID.String(),
		EmployeeName:  salary.EmployeeName,
		BaseSalary:    salary.BaseSalary.StringFixed(2),
		Currency:      salary.Currency,
		EffectiveDate: salary.EffectiveDate.Format(dateLayout),
	}
}

func mapComponentToResponse(c PayComponent) ComponentResponse {
	res := ComponentResponse{
		ID:            c.ID.String(),
		EmployeeID:    c.EmployeeID.String(),
		Kind:          string(c.Kind),
		Name:          c.Name,
		Amount:        c.Amount.StringFixed(2),
		Vested:        c.Vested,
		EffectiveFrom: c.EffectiveFrom.Format(dateLayout),
		EffectiveTo:   formatOptionalDate(c.EffectiveTo),
	}
	switch c.Kind {
	case KindCommission:
		res.Rate = c.Rate.String()
	case KindLoan:
		res.RemainingBalance = c.RemainingBalance.StringFixed(2)
	}
	return res
}

func mapSuspensionToResponse(s Suspension) SuspensionResponse {
	return SuspensionResponse{
		ID:         s.ID.String(),
		EmployeeID: s.EmployeeID.String(),
		StartDate:  s.StartDate.Format(dateLayout),
		EndDate:    formatOptionalDate(s.EndDate),
		WithPay:    s.WithPay,
		Reason:     s.Reason,
	}
}

package payroll

import (
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Totals struct {
	BaseSalary     decimal.Decimal `gorm:"column:total_base_salary;type:numeric(18,2);not null;default:0" json:"base_salary"`
	Allowances     decimal.Decimal `gorm:"column:total_allowances;type:numeric(18,2);not null;default:0" json:"allowances"`
	Overtime       decimal.Decimal `gorm:"column:total_overtime;type:numeric(18,2);not null;default:0" json:"overtime"`
	Commission     decimal.Decimal `gorm:"column:total_commission;type:numeric(18,2);not null;default:0" json:"commission"`
	Gross          decimal.Decimal `gorm:"column:total_gross;type:numeric(18,2);not null;default:0" json:"gross"`
	Deductions     decimal.Decimal `gorm:"column:total_deductions;type:numeric(18,2);not null;default:0" json:"deductions"`
	Net            decimal.Decimal `gorm:"column:total_net;type:numeric(18,2);not null;default:0" json:"net"`
	DisbursableNet decimal.Decimal `gorm:"column:total_disbursable_net;type:numeric(18,2);not null;default:0" json:"disbursable_net"`
}

type Run struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RunNumber    string     `gorm:"type:varchar(30);not null;uniqueIndex:uq_payroll_run_number"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_payroll_runs_company_status"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`
	Period       Period     `gorm:"embedded"`

	ConfigVersion string `gorm:"type:varchar(40);not null"`
	InputsDigest  string `gorm:"type:char(64);not null"`

	Status       Status  `gorm:"type:varchar(20);not null;index:idx_payroll_runs_company_status"`
	Frozen       bool    `gorm:"not null;default:false"`
	FrozenReason *string `gorm:"type:text"`

	EmployeeCount int    `gorm:"not null;default:0"`
	Totals        Totals `gorm:"embedded"`
	Exceptions    int    `gorm:"not null;default:0"`

	CreatedBy         uuid.UUID  `gorm:"type:uuid;not null"`
	SubmittedBy       *uuid.UUID `gorm:"type:uuid"`
	SubmittedAt       *time.Time
	ManagerApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ManagerApprovedAt *time.Time
	FinanceApprovedBy *uuid.UUID `gorm:"type:uuid"`
	FinanceApprovedAt *time.Time
	RejectionReason   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items          []Item               `gorm:"foreignKey:RunID"`
	Irregularities []Irregularity       `gorm:"foreignKey:RunID"`
	Failures       []ComputationFailure `gorm:"foreignKey:RunID"`
	Transitions    []Transition         `gorm:"foreignKey:RunID"`
}

func (Run) TableName() string {
	return "payroll_runs"
}

type LineKind string

const (
	LineBaseSalary      LineKind = "base_salary"
	LineAllowance       LineKind = "allowance"
	LineOvertime        LineKind = "overtime"
	LineCommission      LineKind = "commission"
	LineSocialInsurance LineKind = "social_insurance"
	LineHealthInsurance LineKind = "health_insurance"
	LinePension         LineKind = "pension"
	LineTax             LineKind = "tax"
	LineLoan            LineKind = "loan"
	LinePenalty         LineKind = "penalty"
	LineAbsence         LineKind = "absence"
	LineUnpaidLeave     LineKind = "unpaid_leave"
	LineFixed           LineKind = "fixed"
)

type Line struct {
	Kind   LineKind        `json:"kind"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type Lines []Line

func (l Lines) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l {
		total = total.Add(line.Amount)
	}
	return total
}

// Item is the computed pay of one employee within a run.
type Item struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_item_employee"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_item_employee"`
	EmployeeName string    `gorm:"type:varchar(150)"`
	Currency     string    `gorm:"type:varchar(3);not null"`

	BaseSalary             decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	ProratedBaseSalary     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AllowancesTotal        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	OvertimeMinutes        int             `gorm:"not null;default:0"`
	OvertimeAmount         decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	CommissionAmount       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	ProrationFactor        decimal.Decimal `gorm:"type:numeric(9,6);not null"`
	ProratedForHire        bool            `gorm:"not null;default:false"`
	ProratedForTermination bool            `gorm:"not null;default:false"`
	Suspended              bool            `gorm:"not null;default:false"`
	AbsenceDays            int             `gorm:"not null;default:0"`
	UnpaidLeaveDays        int             `gorm:"not null;default:0"`

	GrossPay             decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TaxableIncome        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TaxAmount            decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	SocialInsurance      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	HealthInsurance      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Pension              decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	LoanDeduction        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	PenaltyDeduction     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AbsenceDeduction     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	UnpaidLeaveDeduction decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TotalDeductions      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	NetPay               decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	ExcludedFromDisbursement bool `gorm:"not null;default:false"`

	Earnings   Lines `gorm:"type:jsonb;serializer:json"`
	Deductions Lines `gorm:"type:jsonb;serializer:json"`
}

func (Item) TableName() string {
	return "payroll_items"
}

type Irregularity struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	RunID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	CompanyID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Seq        int              `gorm:"not null"`
	Type       IrregularityType `gorm:"type:varchar(40);not null"`
	Severity   Severity         `gorm:"type:varchar(20);not null"`

	CurrentValue  decimal.Decimal     `gorm:"type:numeric(18,2);not null"`
	BaselineValue decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	VariancePct   decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Description   string              `gorm:"type:text;not null"`

	Status          IrregularityStatus `gorm:"type:varchar(20);not null"`
	ResolvedBy      *uuid.UUID         `gorm:"type:uuid"`
	ResolvedAt      *time.Time
	Decision        *IrregularityStatus `gorm:"type:varchar(20)"`
	ResolutionNotes *string             `gorm:"type:text"`
}

func (Irregularity) TableName() string {
	return "payroll_irregularities"
}

func (i Irregularity) RequiresManagerAction() bool {
	return i.Severity.AtLeast(SeverityCritical)
}

// Resolve records a decision on a pending or escalated irregularity.
// Detection fields are left untouched.
func (i *Irregularity) Resolve(actorID uuid.UUID, decision IrregularityStatus, notes string, now time.Time) error {
	if decision != IrregularityResolved && decision != IrregularityRejected {
		return payrollerrors.ErrInvalidDecision
	}
	if !i.Status.Unresolved() {
		return payrollerrors.ErrIrregularityAlreadyResolved
	}
	at := now
	d := decision
	i.Status = decision
	i.ResolvedBy = &actorID
	i.ResolvedAt = &at
	i.Decision = &d
	if notes != "" {
		i.ResolutionNotes = &notes
	}
	return nil
}

type ComputationFailure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	Code       string    `gorm:"type:varchar(40);not null"`
	Message    string    `gorm:"type:text;not null"`
}

func (ComputationFailure) TableName() string {
	return "payroll_computation_failures"
}

type Transition struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null"`
	Event      Event     `gorm:"type:varchar(30);not null"`
	FromStatus Status    `gorm:"type:varchar(20);not null"`
	ToStatus   Status    `gorm:"type:varchar(20);not null"`
	Frozen     bool      `gorm:"not null;default:false"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	Reason     *string   `gorm:"type:text"`
	CreatedAt  time.Time
}

func (Transition) TableName() string {
	return "payroll_run_transitions"
}

type Payslip struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_payslip_employee"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_payslip_employee"`
	ItemID      uuid.UUID `gorm:"type:uuid;not null"`
	FileName    string    `gorm:"type:varchar(200);not null"`
	Content     []byte    `gorm:"type:bytea;not null"`
	GeneratedAt time.Time `gorm:"not null"`
}

func (Payslip) TableName() string {
	return "payroll_payslips"
}

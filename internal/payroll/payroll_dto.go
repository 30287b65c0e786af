package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type ComputeRunRequest struct {
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	Year         int    `json:"year" binding:"required,min=2000,max=2100"`
	Month        int    `json:"month" binding:"required,min=1,max=12"`
	PeriodStart  string `json:"period_start" binding:"omitempty,datetime=2006-01-02"`
	PeriodEnd    string `json:"period_end" binding:"omitempty,datetime=2006-01-02"`
}

type TransitionRunRequest struct {
	Event  string `json:"event" binding:"required"`
	Reason string `json:"reason" binding:"max=1000"`
}

type ResolveIrregularityRequest struct {
	Decision string `json:"decision" binding:"required,oneof=resolved rejected"`
	Notes    string `json:"notes" binding:"max=1000"`
}

type GetRunsFilterRequest struct {
	Status string `form:"status"`
	Year   int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Month  int    `form:"month" binding:"omitempty,min=1,max=12"`
}

type TotalsResponse struct {
	BaseSalary     decimal.Decimal `json:"base_salary"`
	Allowances     decimal.Decimal `json:"allowances"`
	Overtime       decimal.Decimal `json:"overtime"`
	Commission     decimal.Decimal `json:"commission"`
	Gross          decimal.Decimal `json:"gross"`
	Deductions     decimal.Decimal `json:"deductions"`
	Net            decimal.Decimal `json:"net"`
	DisbursableNet decimal.Decimal `json:"disbursable_net"`
}

type RunSummaryResponse struct {
	ID            string         `json:"id"`
	RunNumber     string         `json:"run_number"`
	CompanyID     string         `json:"company_id"`
	DepartmentID  *string        `json:"department_id,omitempty"`
	PeriodStart   string         `json:"period_start"`
	PeriodEnd     string         `json:"period_end"`
	Status        Status         `json:"status"`
	Frozen        bool           `json:"frozen"`
	FrozenReason  *string        `json:"frozen_reason,omitempty"`
	ConfigVersion string         `json:"config_version"`
	EmployeeCount int            `json:"employee_count"`
	Exceptions    int            `json:"exceptions"`
	Totals        TotalsResponse `json:"totals"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type ItemResponse struct {
	ID                       string          `json:"id"`
	EmployeeID               string          `json:"employee_id"`
	EmployeeName             string          `json:"employee_name"`
	Currency                 string          `json:"currency"`
	BaseSalary               decimal.Decimal `json:"base_salary"`
	ProratedBaseSalary       decimal.Decimal `json:"prorated_base_salary"`
	ProrationFactor          decimal.Decimal `json:"proration_factor"`
	AllowancesTotal          decimal.Decimal `json:"allowances_total"`
	OvertimeMinutes          int             `json:"overtime_minutes"`
	OvertimeAmount           decimal.Decimal `json:"overtime_amount"`
	CommissionAmount         decimal.Decimal `json:"commission_amount"`
	GrossPay                 decimal.Decimal `json:"gross_pay"`
	TaxableIncome            decimal.Decimal `json:"taxable_income"`
	TotalDeductions          decimal.Decimal `json:"total_deductions"`
	NetPay                   decimal.Decimal `json:"net_pay"`
	Suspended                bool            `json:"suspended"`
	ExcludedFromDisbursement bool            `json:"excluded_from_disbursement"`
	Earnings                 Lines           `json:"earnings"`
	Deductions               Lines           `json:"deductions"`
}

type IrregularityResponse struct {
	ID                    string              `json:"id"`
	EmployeeID            string              `json:"employee_id"`
	Type                  IrregularityType    `json:"type"`
	Severity              Severity            `json:"severity"`
	RequiresManagerAction bool                `json:"requires_manager_action"`
	CurrentValue          decimal.Decimal     `json:"current_value"`
	BaselineValue         decimal.NullDecimal `json:"baseline_value"`
	VariancePct           decimal.NullDecimal `json:"variance_pct"`
	Description           string              `json:"description"`
	Status                IrregularityStatus  `json:"status"`
	ResolvedBy            *string             `json:"resolved_by,omitempty"`
	ResolvedAt            *time.Time          `json:"resolved_at,omitempty"`
	ResolutionNotes       *string             `json:"resolution_notes,omitempty"`
}

type FailureResponse struct {
	EmployeeID string `json:"employee_id"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

type TransitionResponse struct {
	Event      Event     `json:"event"`
	FromStatus Status    `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
	Frozen     bool      `json:"frozen"`
	ActorID    string    `json:"actor_id"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RunResponse struct {
	RunSummaryResponse
	CreatedBy         string                 `json:"created_by"`
	SubmittedBy       *string                `json:"submitted_by,omitempty"`
	ManagerApprovedBy *string                `json:"manager_approved_by,omitempty"`
	FinanceApprovedBy *string                `json:"finance_approved_by,omitempty"`
	RejectionReason   *string                `json:"rejection_reason,omitempty"`
	Items             []ItemResponse         `json:"items"`
	Irregularities    []IrregularityResponse `json:"irregularities"`
	Failures          []FailureResponse      `json:"failures"`
	Transitions       []TransitionResponse   `json:"transitions"`
}

type PayslipFile struct {
	FileName string
	Content  []byte
}

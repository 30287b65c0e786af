package compensation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee is the slice of the employees table payroll needs.
type Employee struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;index"`
	DepartmentID    *uuid.UUID `gorm:"type:uuid;index"`
	FullName        string
	Email           string     `gorm:"uniqueIndex"`
	HireDate        time.Time  `gorm:"type:date;not null"`
	TerminationDate *time.Time `gorm:"type:date"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Salary rows are append-only; the row with the latest effective date on or
// before the period end is the one in force.
type Salary struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;index"`
	BaseSalary    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency      string          `gorm:"type:char(3)"`
	EffectiveDate time.Time       `gorm:"type:date;not null"`
	EmployeeName  string          `gorm:"->;-:migration"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Salary) TableName() string { return "employee_salaries" }

type ComponentKind string

const (
	KindAllowance      ComponentKind = "allowance"
	KindFixedDeduction ComponentKind = "fixed_deduction"
	KindPenalty        ComponentKind = "penalty"
	KindLoan           ComponentKind = "loan"
	KindCommission     ComponentKind = "commission"
)

func (k ComponentKind) Valid() bool {
	switch k {
	case KindAllowance, KindFixedDeduction, KindPenalty, KindLoan, KindCommission:
		return true
	}
	return false
}

// PayComponent is one recurring or one-off pay line.
//
// Amount is the monthly amount for allowances and fixed deductions, the
// incurred amount for penalties, the monthly installment for loans and the
// sales amount for commissions. Rate only applies to commissions and
// RemainingBalance only to loans.
type PayComponent struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID       uuid.UUID       `gorm:"type:uuid;index"`
	Kind             ComponentKind   `gorm:"type:varchar(32);not null"`
	Name             string          `gorm:"not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Rate             decimal.Decimal `gorm:"type:numeric(9,6);not null;default:0"`
	RemainingBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Vested           bool            `gorm:"not null;default:false"`
	EffectiveFrom    time.Time       `gorm:"type:date;not null"`
	EffectiveTo      *time.Time      `gorm:"type:date"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (PayComponent) TableName() string { return "pay_components" }

type Suspension struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;index"`
	StartDate  time.Time  `gorm:"type:date;not null"`
	EndDate    *time.Time `gorm:"type:date"`
	WithPay    bool       `gorm:"not null;default:false"`
	Reason     string
	CreatedAt  time.Time
}

func (Suspension) TableName() string { return "employee_suspensions" }

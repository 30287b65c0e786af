package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"

	LeaveStatusApproved = "APPROVED"
	LeaveTypeUnpaid     = "UNPAID"
)

type Attendance struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID     uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index"`
	AttendanceDate time.Time      `gorm:"column:attendance_date;type:date;not null;index"`
	ClockIn        time.Time      `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut       *time.Time     `gorm:"column:clock_out;type:timestamptz"`
	Status         string         `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Source         string         `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	Notes          *string        `gorm:"column:notes;type:text"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Employee       *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// WorkedMinutes is zero until the employee clocks out.
func (a Attendance) WorkedMinutes() int {
	if a.ClockOut == nil || !a.ClockOut.After(a.ClockIn) {
		return 0
	}
	return int(a.ClockOut.Sub(a.ClockIn).Minutes())
}

// EmployeeRef reads the employment window from the employees table.
type EmployeeRef struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName        string     `gorm:"column:full_name"`
	HireDate        time.Time  `gorm:"column:hire_date;type:date"`
	TerminationDate *time.Time `gorm:"column:termination_date;type:date"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// Leave is a read model over the leaves table; only approved rows matter here.
type Leave struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID      `gorm:"type:uuid;not null"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null"`
	LeaveType  string         `gorm:"type:varchar(30);not null"`
	StartDate  time.Time      `gorm:"type:date;not null"`
	EndDate    time.Time      `gorm:"type:date;not null"`
	Status     string         `gorm:"type:varchar(20);not null"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Leave) TableName() string {
	return "leaves"
}

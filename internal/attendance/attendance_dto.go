package attendance

type ClockInRequest struct {
	Source string  `json:"source" binding:"omitempty,oneof=MANUAL MOBILE DEVICE"`
	Notes  *string `json:"notes" binding:"omitempty,max=500"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

type ListQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type SummaryQuery struct {
	EmployeeID string `form:"employee_id" binding:"required,uuid"`
	Year       int    `form:"year" binding:"required,min=2000,max=2100"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	ClockIn        string  `json:"clock_in"`
	ClockOut       *string `json:"clock_out,omitempty"`
	WorkedMinutes  int     `json:"worked_minutes"`
	Status         string  `json:"status"`
	Source         string  `json:"source"`
	Notes          *string `json:"notes,omitempty"`
}

type SummaryResponse struct {
	EmployeeID             string `json:"employee_id"`
	Period                 string `json:"period"`
	ScheduledMinutes       int    `json:"scheduled_minutes"`
	OvertimeMinutes        int    `json:"overtime_minutes"`
	AbsenceDays            int    `json:"absence_days"`
	AbsenceDeductionPerDay string `json:"absence_deduction_per_day"`
	UnpaidLeaveDays        int    `json:"unpaid_leave_days"`
}

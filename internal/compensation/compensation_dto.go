package compensation

type CreateSalaryRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	BaseSalary    string `json:"base_salary" binding:"required"`
	Currency      string `json:"currency" binding:"omitempty,len=3"`
	EffectiveDate string `json:"effective_date" binding:"required"`
}

type SalaryResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	BaseSalary    string `json:"base_salary"`
	Currency      string `json:"currency,omitempty"`
	EffectiveDate string `json:"effective_date"`
}

type CreateComponentRequest struct {
	Kind             string `json:"kind" binding:"required"`
	Name             string `json:"name" binding:"required,max=100"`
	Amount           string `json:"amount" binding:"required"`
	Rate             string `json:"rate"`
	RemainingBalance string `json:"remaining_balance"`
	Vested           bool   `json:"vested"`
	EffectiveFrom    string `json:"effective_from" binding:"required"`
	EffectiveTo      string `json:"effective_to"`
}

type ComponentResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	Kind             string `json:"kind"`
	Name             string `json:"name"`
	Amount           string `json:"amount"`
	Rate             string `json:"rate,omitempty"`
	RemainingBalance string `json:"remaining_balance,omitempty"`
	Vested           bool   `json:"vested,omitempty"`
	EffectiveFrom    string `json:"effective_from"`
	EffectiveTo      string `json:"effective_to,omitempty"`
}

type CreateSuspensionRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"`
	WithPay   bool   `json:"with_pay"`
	Reason    string `json:"reason" binding:"max=255"`
}

type SuspensionResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date,omitempty"`
	WithPay    bool   `json:"with_pay"`
	Reason     string `json:"reason,omitempty"`
}

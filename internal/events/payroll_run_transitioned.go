package events

import "time"

const PayrollRunTransitionedTopic = "hr.payroll.run.transitioned.v1"

type PayrollRunTransitionedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	RunID      string    `json:"run_id"`
	RunNumber  string    `json:"run_number"`
	CompanyID  string    `json:"company_id"`
	Event      string    `json:"event"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Frozen     bool      `json:"frozen"`
	ActorID    string    `json:"actor_id"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

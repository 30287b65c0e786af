package payroll

import (
	"database/sql/driver"
	"fmt"
	"strings"

	payrollerrors "go-payroll/internal/payroll/errors"
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusLocked      Status = "locked"
	StatusRejected    Status = "rejected"
	StatusUnlocked    Status = "unlocked"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusUnderReview, StatusApproved, StatusLocked, StatusRejected, StatusUnlocked:
		return true
	}
	return false
}

// InFlight reports whether the run still blocks a new run for the same period.
func (s Status) InFlight() bool {
	return s != StatusLocked
}

// legacyStatuses maps every spelling seen in stored rows and older clients.
var legacyStatuses = map[string]Status{
	"draft":            StatusDraft,
	"under_review":     StatusUnderReview,
	"under review":     StatusUnderReview,
	"in_review":        StatusUnderReview,
	"in review":        StatusUnderReview,
	"pending_review":   StatusUnderReview,
	"submitted":        StatusUnderReview,
	"approved":         StatusApproved,
	"manager_approved": StatusApproved,
	"pending_finance":  StatusApproved,
	"processed":        StatusApproved,
	"locked":           StatusLocked,
	"finance_approved": StatusLocked,
	"paid":             StatusLocked,
	"closed":           StatusLocked,
	"rejected":         StatusRejected,
	"declined":         StatusRejected,
	"cancelled":        StatusRejected,
	"unlocked":         StatusUnlocked,
	"reopened":         StatusUnlocked,
}

// NormalizeStatus is the single mapping from stored or transported status
// strings to the closed Status set.
func NormalizeStatus(raw string) (Status, error) {
	key := strings.ToLower(strings.Join(strings.Fields(strings.ReplaceAll(raw, "-", " ")), " "))
	if s, ok := legacyStatuses[key]; ok {
		return s, nil
	}
	if s, ok := legacyStatuses[strings.ReplaceAll(key, " ", "_")]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", payrollerrors.ErrInvalidStatus, raw)
}

func (s *Status) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: null", payrollerrors.ErrInvalidStatus)
	default:
		return fmt.Errorf("%w: unsupported type %T", payrollerrors.ErrInvalidStatus, value)
	}
	normalized, err := NormalizeStatus(raw)
	if err != nil {
		return err
	}
	*s = normalized
	return nil
}

func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", payrollerrors.ErrInvalidStatus, string(s))
	}
	return string(s), nil
}

type Event string

const (
	EventSubmit         Event = "submit"
	EventManagerApprove Event = "manager_approve"
	EventManagerReject  Event = "manager_reject"
	EventFinanceApprove Event = "finance_approve"
	EventFinanceReject  Event = "finance_reject"
	EventResubmit       Event = "resubmit"
	EventFreeze         Event = "freeze"
	EventUnfreeze       Event = "unfreeze"
	EventEditResubmit   Event = "edit_resubmit"
)

var allEvents = []Event{
	EventSubmit, EventManagerApprove, EventManagerReject, EventFinanceApprove,
	EventFinanceReject, EventResubmit, EventFreeze, EventUnfreeze, EventEditResubmit,
}

// Events returns every event in a fixed order. Each one doubles as the
// authorizer action name for that event.
func Events() []Event {
	return append([]Event(nil), allEvents...)
}

func ParseEvent(raw string) (Event, error) {
	e := Event(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range allEvents {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", payrollerrors.ErrInvalidEvent, raw)
}

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

type IrregularityType string

const (
	IrregularityOvertimeSpike       IrregularityType = "overtime_spike"
	IrregularitySalarySpike         IrregularityType = "salary_spike"
	IrregularityCommissionSpike     IrregularityType = "commission_spike"
	IrregularityNegativeNetPay      IrregularityType = "negative_net_pay"
	IrregularityNewHireProrated     IrregularityType = "new_hire_prorated"
	IrregularityLoanDeduction       IrregularityType = "loan_deduction"
	IrregularityPenaltyDeduction    IrregularityType = "penalty_deduction"
	IrregularityAbsenceDeduction    IrregularityType = "absence_deduction"
	IrregularityExtendedUnpaidLeave IrregularityType = "extended_unpaid_leave"
	IrregularitySuspendedEmployee   IrregularityType = "suspended_employee"
)

type IrregularityStatus string

const (
	IrregularityPending   IrregularityStatus = "pending"
	IrregularityEscalated IrregularityStatus = "escalated"
	IrregularityResolved  IrregularityStatus = "resolved"
	IrregularityRejected  IrregularityStatus = "rejected"
)

func (s IrregularityStatus) Unresolved() bool {
	return s == IrregularityPending || s == IrregularityEscalated
}

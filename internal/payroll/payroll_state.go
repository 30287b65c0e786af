package payroll

import (
	"fmt"
	"strings"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
)

// TransitionError names the guard that blocked an event. It unwraps to
// ErrInvalidTransition carrying from/event/guard as response details.
type TransitionError struct {
	From   Status
	Frozen bool
	Event  Event
	Guard  string
}

func (e *TransitionError) Error() string {
	from := string(e.From)
	if e.Frozen {
		from += " (frozen)"
	}
	return fmt.Sprintf("cannot %s payroll run in status %s: %s", e.Event, from, e.Guard)
}

func (e *TransitionError) Unwrap() error {
	return payrollerrors.ErrInvalidTransition.WithDetails(map[string]any{
		"from":   e.From,
		"frozen": e.Frozen,
		"event":  e.Event,
		"guard":  e.Guard,
	})
}

type TransitionRequest struct {
	Event   Event
	ActorID uuid.UUID
	Reason  string
}

// Guards carries facts the state machine cannot compute on its own.
type Guards struct {
	Authorized    bool
	InputsCurrent bool
}

type Outcome struct {
	Run        Run
	Transition Transition
	// Escalated lists irregularities moved pending→escalated. It can be set
	// alongside an error, in which case only those irregularities change.
	Escalated []uuid.UUID
	// NoOp is set for a repeated freeze.
	NoOp bool
	// Recompute asks the caller to re-run the pipeline before persisting.
	Recompute bool
}

type StateMachine struct{}

// Apply evaluates one event against a copy of the run. The input run is never
// modified; on error the returned run equals the input apart from escalations.
func (StateMachine) Apply(run Run, req TransitionRequest, g Guards, now time.Time) (Outcome, error) {
	next := run
	next.Irregularities = append([]Irregularity(nil), run.Irregularities...)

	fail := func(guard string) (Outcome, error) {
		return Outcome{Run: run}, &TransitionError{From: run.Status, Frozen: run.Frozen, Event: req.Event, Guard: guard}
	}

	if !g.Authorized {
		return fail("actor not permitted")
	}
	if req.ActorID == uuid.Nil {
		return fail("actor is required")
	}
	reason := strings.TrimSpace(req.Reason)

	if run.Frozen && req.Event != EventFreeze && req.Event != EventUnfreeze {
		return fail("run is frozen")
	}

	switch req.Event {
	case EventSubmit:
		if run.Status != StatusDraft {
			return fail("run is not a draft")
		}
		if len(run.Items) == 0 {
			return fail("run has no items")
		}
		if len(run.Failures) > 0 {
			return fail(fmt.Sprintf("%d employees failed to compute", len(run.Failures)))
		}
		if !g.InputsCurrent {
			return fail("inputs changed since computation, recompute first")
		}
		next.Status = StatusUnderReview
		next.SubmittedBy = &req.ActorID
		next.SubmittedAt = &now

	case EventManagerApprove:
		if run.Status != StatusUnderReview {
			return fail("run is not under review")
		}
		var escalated []uuid.UUID
		for i := range next.Irregularities {
			irr := &next.Irregularities[i]
			if irr.Status == IrregularityPending && irr.Severity.AtLeast(SeverityMedium) {
				irr.Status = IrregularityEscalated
				escalated = append(escalated, irr.ID)
			}
		}
		if len(escalated) > 0 {
			out, err := fail(fmt.Sprintf("%d irregularities escalated for review", len(escalated)))
			out.Run.Irregularities = next.Irregularities
			out.Escalated = escalated
			return out, err
		}
		for _, irr := range next.Irregularities {
			if irr.Status.Unresolved() && (irr.Status == IrregularityEscalated || irr.RequiresManagerAction()) {
				return fail("unresolved escalated irregularities")
			}
		}
		next.Status = StatusApproved
		next.ManagerApprovedBy = &req.ActorID
		next.ManagerApprovedAt = &now

	case EventManagerReject:
		if run.Status != StatusUnderReview {
			return fail("run is not under review")
		}
		if reason == "" {
			return fail("reason is required")
		}
		next.Status = StatusRejected
		next.RejectionReason = &reason

	case EventFinanceApprove:
		if run.Status != StatusApproved {
			return fail("run is not manager approved")
		}
		if run.ManagerApprovedBy != nil && *run.ManagerApprovedBy == req.ActorID {
			return fail("finance approver must differ from manager approver")
		}
		next.Status = StatusLocked
		next.FinanceApprovedBy = &req.ActorID
		next.FinanceApprovedAt = &now

	case EventFinanceReject:
		if run.Status != StatusApproved {
			return fail("run is not manager approved")
		}
		if reason == "" {
			return fail("reason is required")
		}
		next.Status = StatusRejected
		next.RejectionReason = &reason

	case EventResubmit, EventEditResubmit:
		want := StatusRejected
		if req.Event == EventEditResubmit {
			want = StatusUnlocked
		}
		if run.Status != want {
			return fail(fmt.Sprintf("run is not %s", want))
		}
		next.Status = StatusDraft
		next.SubmittedBy, next.SubmittedAt = nil, nil
		next.ManagerApprovedBy, next.ManagerApprovedAt = nil, nil
		next.FinanceApprovedBy, next.FinanceApprovedAt = nil, nil
		next.RejectionReason = nil

	case EventFreeze:
		if run.Status != StatusApproved && run.Status != StatusLocked {
			return fail("only approved or locked runs can be frozen")
		}
		if run.Frozen {
			return Outcome{Run: run, NoOp: true}, nil
		}
		if reason == "" {
			return fail("reason is required")
		}
		next.Frozen = true
		next.FrozenReason = &reason

	case EventUnfreeze:
		if !run.Frozen {
			return fail("run is not frozen")
		}
		if reason == "" {
			return fail("reason is required")
		}
		next.Frozen = false
		next.FrozenReason = nil
		if run.Status == StatusLocked {
			next.Status = StatusUnlocked
		}

	default:
		return fail("unknown event")
	}

	out := Outcome{
		Run:       next,
		Recompute: req.Event == EventResubmit || req.Event == EventEditResubmit,
		Transition: Transition{
			ID:         uuid.New(),
			RunID:      run.ID,
			CompanyID:  run.CompanyID,
			Event:      req.Event,
			FromStatus: run.Status,
			ToStatus:   next.Status,
			Frozen:     next.Frozen,
			ActorID:    req.ActorID,
			CreatedAt:  now,
		},
	}
	if reason != "" {
		out.Transition.Reason = &reason
	}
	return out, nil
}

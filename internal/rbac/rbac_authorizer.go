package rbac

import (
	"context"

	"go-payroll/internal/payroll"
)

// PayrollResource is the casbin object every payroll run permission is granted on.
const PayrollResource = "payroll_run"

// PayrollAuthorizer answers capability questions for payroll runs. Each
// transition event is its own casbin action, so "manager_approve" and
// "finance_approve" can be granted to different roles.
type PayrollAuthorizer struct {
	service Service
}

func NewPayrollAuthorizer(service Service) *PayrollAuthorizer {
	return &PayrollAuthorizer{service: service}
}

var _ payroll.Authorizer = (*PayrollAuthorizer)(nil)

func (a *PayrollAuthorizer) CanPerform(ctx context.Context, companyID, actorID, action string) (bool, error) {
	if companyID == "" || actorID == "" {
		return false, nil
	}
	return a.service.Enforce(ctx, EnforceRequest{
		EmployeeID: actorID,
		CompanyID:  companyID,
		Resource:   PayrollResource,
		Action:     action,
	})
}

// Capabilities lists the payroll actions the actor holds, events first.
func (a *PayrollAuthorizer) Capabilities(ctx context.Context, companyID, actorID string) ([]string, error) {
	actions := make([]string, 0, len(payroll.Events())+1)
	for _, e := range payroll.Events() {
		actions = append(actions, string(e))
	}
	actions = append(actions, payroll.ActionResolveIrregularity)

	allowed := make([]string, 0, len(actions))
	for _, action := range actions {
		ok, err := a.CanPerform(ctx, companyID, actorID, action)
		if err != nil {
			return nil, err
		}
		if ok {
			allowed = append(allowed, action)
		}
	}
	return allowed, nil
}

package rbac

import "go-payroll/internal/domain"

type EnforceRequest = domain.EnforceRequest

type CapabilitiesResponse struct {
	Resource string   `json:"resource"`
	Actions  []string `json:"actions"`
}

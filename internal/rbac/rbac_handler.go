package rbac

import (
	"context"
	"net/http"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type CapabilityLister interface {
	Capabilities(ctx context.Context, companyID, actorID string) ([]string, error)
}

type Handler struct {
	payroll CapabilityLister
}

func NewHandler(payroll CapabilityLister) *Handler {
	return &Handler{payroll: payroll}
}

// PayrollCapabilities lets clients decide which run actions to offer the caller.
func (h *Handler) PayrollCapabilities(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("employee_id")

	actions, err := h.payroll.Capabilities(c.Request.Context(), companyID, actorID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, CapabilitiesResponse{
		Resource: PayrollResource,
		Actions:  actions,
	}, nil)
}

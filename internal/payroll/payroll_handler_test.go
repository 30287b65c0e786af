package payroll_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type apiMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *apiMeta        `json:"meta"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	computeFn    func(ctx context.Context, companyID, actorID string, req payroll.ComputeRunRequest) (payroll.RunResponse, error)
	transitionFn func(ctx context.Context, companyID, actorID, runID string, req payroll.TransitionRunRequest) (payroll.RunResponse, error)
	getRunFn     func(ctx context.Context, companyID, runID string) (payroll.RunResponse, error)
	getAllFn     func(ctx context.Context, companyID string, filter payroll.GetRunsFilterRequest) ([]payroll.RunSummaryResponse, error)
	recomputeFn  func(ctx context.Context, companyID, actorID, runID string) (payroll.RunResponse, error)
	resolveFn    func(ctx context.Context, companyID, actorID, runID, irregularityID string, req payroll.ResolveIrregularityRequest) (payroll.RunResponse, error)
	deleteFn     func(ctx context.Context, companyID, runID string) error
	generateFn   func(ctx context.Context, companyID, runID string) (int, error)
	getPayslipFn func(ctx context.Context, companyID, runID, employeeID string) (payroll.PayslipFile, error)
}

func (f *fakePayrollService) ComputeRun(ctx context.Context, companyID, actorID string, req payroll.ComputeRunRequest) (payroll.RunResponse, error) {
	return f.computeFn(ctx, companyID, actorID, req)
}

func (f *fakePayrollService) Transition(ctx context.Context, companyID, actorID, runID string, req payroll.TransitionRunRequest) (payroll.RunResponse, error) {
	return f.transitionFn(ctx, companyID, actorID, runID, req)
}

func (f *fakePayrollService) GetRun(ctx context.Context, companyID, runID string) (payroll.RunResponse, error) {
	return f.getRunFn(ctx, companyID, runID)
}

func (f *fakePayrollService) GetAll(ctx context.Context, companyID string, filter payroll.GetRunsFilterRequest) ([]payroll.RunSummaryResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}

func (f *fakePayrollService) Recompute(ctx context.Context, companyID, actorID, runID string) (payroll.RunResponse, error) {
	return f.recomputeFn(ctx, companyID, actorID, runID)
}

func (f *fakePayrollService) ResolveIrregularity(ctx context.Context, companyID, actorID, runID, irregularityID string, req payroll.ResolveIrregularityRequest) (payroll.RunResponse, error) {
	return f.resolveFn(ctx, companyID, actorID, runID, irregularityID, req)
}

func (f *fakePayrollService) Delete(ctx context.Context, companyID, runID string) error {
	return f.deleteFn(ctx, companyID, runID)
}

func (f *fakePayrollService) GeneratePayslips(ctx context.Context, companyID, runID string) (int, error) {
	return f.generateFn(ctx, companyID, runID)
}

func (f *fakePayrollService) GetPayslip(ctx context.Context, companyID, runID, employeeID string) (payroll.PayslipFile, error) {
	return f.getPayslipFn(ctx, companyID, runID, employeeID)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func TestPayrollHandler_Compute(t *testing.T) {
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	svc := &fakePayrollService{
		computeFn: func(ctx context.Context, cid, aid string, req payroll.ComputeRunRequest) (payroll.RunResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, 2026, req.Year)
			assert.Equal(t, 3, req.Month)
			return payroll.RunResponse{RunSummaryResponse: payroll.RunSummaryResponse{
				ID:        uuid.New().String(),
				RunNumber: "PR-202603-000001",
				Status:    payroll.StatusDraft,
			}}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodPost, "/payroll-runs", `{"year":2026,"month":3}`)
	c.Set("company_id", companyID)
	c.Set("employee_id", actorID)

	h.Compute(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	var data payroll.RunResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "PR-202603-000001", data.RunNumber)
}

func TestPayrollHandler_Compute_ValidationError(t *testing.T) {
	svc := &fakePayrollService{
		computeFn: func(ctx context.Context, companyID, actorID string, req payroll.ComputeRunRequest) (payroll.RunResponse, error) {
			t.Fatal("service must not be called")
			return payroll.RunResponse{}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodPost, "/payroll-runs", `{"year":2026,"month":13}`)
	c.Set("company_id", uuid.New().String())
	c.Set("user_id_validated", uuid.New().String())

	h.Compute(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestPayrollHandler_Compute_InFlight(t *testing.T) {
	svc := &fakePayrollService{
		computeFn: func(ctx context.Context, companyID, actorID string, req payroll.ComputeRunRequest) (payroll.RunResponse, error) {
			return payroll.RunResponse{}, payrollerrors.ErrRunInFlight
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodPost, "/payroll-runs", `{"year":2026,"month":3}`)

	h.Compute(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestPayrollHandler_Transition_InvalidState(t *testing.T) {
	runID := uuid.New().String()
	svc := &fakePayrollService{
		transitionFn: func(ctx context.Context, companyID, actorID, id string, req payroll.TransitionRunRequest) (payroll.RunResponse, error) {
			assert.Equal(t, runID, id)
			assert.Equal(t, "finance_approve", req.Event)
			return payroll.RunResponse{}, &payroll.TransitionError{
				From:  payroll.StatusApproved,
				Event: payroll.EventFinanceApprove,
				Guard: "finance approver must differ from manager approver",
			}
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodPost, "/payroll-runs/"+runID+"/transitions", `{"event":"finance_approve"}`)
	c.Params = gin.Params{{Key: "id", Value: runID}}
	c.Set("employee_id", uuid.New().String())

	h.Transition(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
	details, ok := env.Error.Details.(map[string]any)
	require.True(t, ok, "details: %#v", env.Error.Details)
	assert.Equal(t, "approved", details["from"])
	assert.Equal(t, "finance_approve", details["event"])
	assert.Equal(t, "finance approver must differ from manager approver", details["guard"])
	assert.Equal(t, false, details["frozen"])
}

func TestPayrollHandler_Transition_MissingEvent(t *testing.T) {
	h := payroll.NewHandler(&fakePayrollService{})
	c, w := newTestContext(http.MethodPost, "/payroll-runs/x/transitions", `{}`)
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	h.Transition(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayrollHandler_GetAll_Paginates(t *testing.T) {
	runs := make([]payroll.RunSummaryResponse, 25)
	for i := range runs {
		runs[i] = payroll.RunSummaryResponse{ID: uuid.New().String()}
	}
	svc := &fakePayrollService{
		getAllFn: func(ctx context.Context, companyID string, filter payroll.GetRunsFilterRequest) ([]payroll.RunSummaryResponse, error) {
			assert.Equal(t, "submitted", filter.Status)
			assert.Equal(t, 2026, filter.Year)
			return runs, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/payroll-runs?status=submitted&year=2026&page=3&page_size=10", "")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	var data []payroll.RunSummaryResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data, 5)
	assert.Equal(t, runs[20].ID, data[0].ID)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(25), env.Meta.Total)
	assert.Equal(t, 3, env.Meta.TotalPages)
}

func TestPayrollHandler_GetById_NotFound(t *testing.T) {
	svc := &fakePayrollService{
		getRunFn: func(ctx context.Context, companyID, runID string) (payroll.RunResponse, error) {
			return payroll.RunResponse{}, payrollerrors.ErrRunNotFound
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/payroll-runs/abc", "")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestPayrollHandler_ResolveIrregularity(t *testing.T) {
	runID, irrID := uuid.New().String(), uuid.New().String()
	svc := &fakePayrollService{
		resolveFn: func(ctx context.Context, companyID, actorID, id, irregularityID string, req payroll.ResolveIrregularityRequest) (payroll.RunResponse, error) {
			assert.Equal(t, runID, id)
			assert.Equal(t, irrID, irregularityID)
			assert.Equal(t, "resolved", req.Decision)
			return payroll.RunResponse{}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodPost, "/resolve", `{"decision":"resolved","notes":"confirmed with team lead"}`)
	c.Params = gin.Params{{Key: "id", Value: runID}, {Key: "irregularityId", Value: irrID}}

	h.ResolveIrregularity(c)

	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(http.MethodPost, "/resolve", `{"decision":"ignored"}`)
	c.Params = gin.Params{{Key: "id", Value: runID}, {Key: "irregularityId", Value: irrID}}
	h.ResolveIrregularity(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	runID, employeeID := uuid.New().String(), uuid.New().String()
	svc := &fakePayrollService{
		getPayslipFn: func(ctx context.Context, companyID, id, emp string) (payroll.PayslipFile, error) {
			assert.Equal(t, runID, id)
			assert.Equal(t, employeeID, emp)
			return payroll.PayslipFile{FileName: "payslip-202603-x.pdf", Content: []byte("%PDF-1.4")}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/payslip", "")
	c.Params = gin.Params{{Key: "id", Value: runID}, {Key: "employeeId", Value: employeeID}}

	h.DownloadPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip-202603-x.pdf")
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestPayrollHandler_DownloadPayslip_NotGenerated(t *testing.T) {
	svc := &fakePayrollService{
		getPayslipFn: func(ctx context.Context, companyID, id, emp string) (payroll.PayslipFile, error) {
			return payroll.PayslipFile{}, payrollerrors.ErrPayslipNotGenerated
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/payslip", "")

	h.DownloadPayslip(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayrollHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakePayrollService{
			deleteFn: func(ctx context.Context, companyID, id string) error { return nil },
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodDelete, "/payroll-runs/1", "")

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, mustDecodeEnvelope(t, w.Body.Bytes()).Ok)
	})

	t.Run("only draft", func(t *testing.T) {
		svc := &fakePayrollService{
			deleteFn: func(ctx context.Context, companyID, id string) error { return payrollerrors.ErrDeleteOnlyDraft },
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodDelete, "/payroll-runs/1", "")

		h.Delete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_STATE", mustDecodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("unexpected error", func(t *testing.T) {
		svc := &fakePayrollService{
			deleteFn: func(ctx context.Context, companyID, id string) error { return errors.New("db down") },
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodDelete, "/payroll-runs/1", "")

		h.Delete(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

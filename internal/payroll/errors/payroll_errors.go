package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidRunID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidIrregularityID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid irregularity id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll period",
		http.StatusBadRequest,
	)
	ErrInvalidEvent = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run event",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run status",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be resolved or rejected",
		http.StatusBadRequest,
	)
	ErrInvalidConfig = apperror.New(
		apperror.CodeInternalError,
		"invalid payroll configuration",
		http.StatusInternalServerError,
	)

	ErrInvalidProfile = apperror.New(
		apperror.CodeInvalidInput,
		"invalid compensation profile",
		http.StatusUnprocessableEntity,
	)
	ErrMissingRateTable = apperror.New(
		apperror.CodeInvalidState,
		"no tax bracket covers the taxable income",
		http.StatusUnprocessableEntity,
	)
	ErrEmptyRun = apperror.New(
		apperror.CodeInvalidState,
		"payroll run has no employees",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payroll run transition",
		http.StatusConflict,
	)

	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrRunInFlight = apperror.New(
		apperror.CodeConflict,
		"a payroll run for this period is already in progress",
		http.StatusConflict,
	)
	ErrRunBusy = apperror.New(
		apperror.CodeConflict,
		"payroll run is being modified, retry later",
		http.StatusConflict,
	)
	ErrDeleteOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"payroll run can only be deleted while status is draft",
		http.StatusBadRequest,
	)
	ErrRecomputeOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"payroll run can only be recomputed while status is draft",
		http.StatusBadRequest,
	)
	ErrIrregularityNotFound = apperror.New(
		apperror.CodeNotFound,
		"irregularity not found",
		http.StatusNotFound,
	)
	ErrIrregularityAlreadyResolved = apperror.New(
		apperror.CodeInvalidState,
		"irregularity is already resolved",
		http.StatusConflict,
	)
	ErrIrregularityLocked = apperror.New(
		apperror.CodeInvalidState,
		"irregularities can only be resolved while the run is draft or under review",
		http.StatusConflict,
	)
	ErrPayslipNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"payslip is not generated yet",
		http.StatusNotFound,
	)
	ErrPayslipRequiresLockedRun = apperror.New(
		apperror.CodeInvalidState,
		"payslips can only be generated for a locked run",
		http.StatusConflict,
	)
	ErrPayslipUnavailable = apperror.New(
		apperror.CodeInvalidState,
		"payslips are only available while the run is locked",
		http.StatusConflict,
	)
)

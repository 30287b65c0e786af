package attendanceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Already clocked in for today",
		http.StatusConflict,
	)

	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"Already clocked out for today",
		http.StatusConflict,
	)

	ErrClockInNotFound = apperror.New(
		apperror.CodeNotFound,
		"No clock in found for today",
		http.StatusNotFound,
	)

	ErrInvalidEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"Employee id is invalid",
		http.StatusBadRequest,
	)

	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"Date range is invalid",
		http.StatusBadRequest,
	)
)

package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrOverlappingPeriod = apperror.New(
		apperror.CodeConflict,
		"a payroll already exists for this worker in an overlapping period",
		http.StatusConflict,
	)
	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"only DRAFT payrolls can be modified or deleted",
		http.StatusUnprocessableEntity,
	)
	ErrNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"only APPROVED payrolls can be marked as paid",
		http.StatusUnprocessableEntity,
	)
)

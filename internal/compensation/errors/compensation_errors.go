package compensationerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidConfigType = apperror.New(
		apperror.CodeInvalidInput,
		"config_type must be group or band",
		http.StatusBadRequest,
	)
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"deduction config not found",
		http.StatusNotFound,
	)
	ErrDuplicateConfig = apperror.New(
		apperror.CodeConflict,
		"a deduction config already exists for this target",
		http.StatusConflict,
	)
	ErrLoanNotFound = apperror.New(
		apperror.CodeNotFound,
		"loan not found",
		http.StatusNotFound,
	)
	ErrLoanSettled = apperror.New(
		apperror.CodeInvalidState,
		"loan is already settled",
		http.StatusUnprocessableEntity,
	)
)

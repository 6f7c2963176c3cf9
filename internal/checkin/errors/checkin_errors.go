package checkinerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrUnknownAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be clockIn, clockOut, lunchOut or lunchIn",
		http.StatusBadRequest,
	)
	ErrMissingCompany = apperror.New(
		apperror.CodeInvalidInput,
		"no company in authentication claims",
		http.StatusBadRequest,
	)
)

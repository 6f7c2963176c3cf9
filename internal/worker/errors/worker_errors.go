package workererrors

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
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid worker id",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentType = apperror.New(
		apperror.CodeInvalidInput,
		"payment_type must be monthly-salary, hourly or unit-based",
		http.StatusBadRequest,
	)
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"worker not found",
		http.StatusNotFound,
	)
	ErrWorkerNotLinked = apperror.New(
		apperror.CodeForbidden,
		"no worker record is linked to this account",
		http.StatusForbidden,
	)
	ErrMissingCompany = apperror.New(
		apperror.CodeInvalidInput,
		"worker has no company assignment",
		http.StatusBadRequest,
	)
)

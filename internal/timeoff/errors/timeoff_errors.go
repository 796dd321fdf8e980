package errors

import (
	"net/http"

	"github.com/deke-r/senseHrm/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Request not found",
		http.StatusNotFound,
	)

	ErrNotPendingCancel = apperror.New(
		apperror.CodeInvalidState,
		"Only pending requests can be cancelled",
		http.StatusBadRequest,
	)

	ErrNotPendingUpdate = apperror.New(
		apperror.CodeInvalidState,
		"Only pending requests can be updated",
		http.StatusBadRequest,
	)

	ErrUnknownKind = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown request type",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be approved or rejected",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"To date must not be before from date",
		http.StatusBadRequest,
	)
)

package errors

import (
	"net/http"

	"github.com/deke-r/senseHrm/internal/shared/apperror"
)

var (
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"You have not checked in today",
		http.StatusBadRequest,
	)

	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"You have already checked out today",
		http.StatusBadRequest,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be in YYYY-MM format",
		http.StatusBadRequest,
	)
)

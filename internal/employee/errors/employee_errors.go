package errors

import (
	"net/http"

	"github.com/deke-r/senseHrm/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"An employee with this email already exists",
		http.StatusConflict,
	)

	ErrNotOwnProfile = apperror.New(
		apperror.CodeForbidden,
		"You can only view your own profile",
		http.StatusForbidden,
	)
)

package checkerrors

import (
	"net/http"

	"github.com/juanesscobar/taskok/internal/shared/apperror"
)

var (
	// The API reports a duplicate check-in as a 400, not a 409.
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Already checked in today",
		http.StatusBadRequest,
	)
	ErrNoCheckIn = apperror.New(
		apperror.CodeNotFound,
		"No check-in found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
)

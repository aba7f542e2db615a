package taskerrors

import (
	"net/http"

	"github.com/juanesscobar/taskok/internal/shared/apperror"
)

var (
	// Ownership misses surface as not-found so task ids of other users are
	// indistinguishable from ids that never existed.
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)
	ErrTitleRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Title is required",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid status",
		http.StatusBadRequest,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid task id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
)

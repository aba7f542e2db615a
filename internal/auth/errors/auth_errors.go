package autherrors

import (
	"net/http"

	"github.com/juanesscobar/taskok/internal/shared/apperror"
)

var (
	// Duplicate registration surfaces as a 400, matching the public API
	// contract rather than a 409.
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"User already exists",
		http.StatusBadRequest,
	)
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials",
		http.StatusUnauthorized,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
)

package employeeerrors

import (
	"net/http"

	"github.com/SchlottiP/employee-test/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee is not existing",
		http.StatusNotFound,
	)
	ErrEmailAlreadyUsed = apperror.New(
		apperror.CodeConflict,
		"E-Mail Address is already in use.",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)

package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/SchlottiP/employee-test/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates driver-level failures into the domain
// taxonomy. The unique index on email is the authoritative uniqueness
// guard: its violation surfaces as the same conflict the application-level
// pre-check raises, which is what makes two racing creates resolve to one
// success and one conflict.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_email" {
			return employeeerrors.ErrEmailAlreadyUsed.WithInternal(err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_email") {
		return employeeerrors.ErrEmailAlreadyUsed.WithInternal(err)
	}

	return err
}

package employee

import (
	"fmt"
	"time"

	"github.com/SchlottiP/employee-test/internal/events"
)

const birthdayLayout = "2006-01-02"

// The binding layer rejects malformed birthdays before requests get here,
// but the parse error is still surfaced so the rule holds for every caller.
func toEntity(req CreateEmployeeRequest) (Employee, error) {
	birthday, err := time.Parse(birthdayLayout, req.Birthday)
	if err != nil {
		return Employee{}, fmt.Errorf("invalid birthday %q, expected YYYY-MM-DD: %w", req.Birthday, err)
	}
	return Employee{
		Email:    req.Email,
		FullName: req.FullName,
		Birthday: birthday,
		Hobbies:  req.Hobbies,
	}, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       empl.ID.String(),
		Email:    empl.Email,
		FullName: empl.FullName,
		Birthday: empl.Birthday.Format(birthdayLayout),
		Hobbies:  empl.Hobbies,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func toSnapshot(empl Employee) events.EmployeeSnapshot {
	return events.EmployeeSnapshot{
		ID:       empl.ID.String(),
		Email:    empl.Email,
		FullName: empl.FullName,
		Birthday: empl.Birthday.Format(birthdayLayout),
		Hobbies:  empl.Hobbies,
	}
}

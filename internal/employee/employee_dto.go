package employee

type CreateEmployeeRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	FullName string   `json:"full_name" binding:"required"`
	Birthday string   `json:"birthday" binding:"required,datetime=2006-01-02"`
	Hobbies  []string `json:"hobbies" binding:"required,min=1"`
}

// UpdateEmployeeRequest uses a pointer per field so "absent" and "set to
// the zero value" stay distinct: a nil field leaves the stored value
// untouched, a non-nil one overwrites it. Hobbies may be set to an empty
// list, which is why the pointer wraps the slice itself.
type UpdateEmployeeRequest struct {
	Email    *string   `json:"email" binding:"omitempty,email"`
	FullName *string   `json:"full_name" binding:"omitempty,min=1"`
	Birthday *string   `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	Hobbies  *[]string `json:"hobbies"`
}

type EmployeeResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Birthday string   `json:"birthday"`
	Hobbies  []string `json:"hobbies"`
}

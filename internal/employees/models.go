package employees

import "time"

// Employee is a person record owned by HR. Accounts (login identities) and
// employees are separate: not every employee has an account.
type Employee struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	DepartmentID string     `json:"department_id,omitempty"`
	Position     string     `json:"position,omitempty"`
	// SalaryMinor is the annual salary in minor currency units.
	SalaryMinor  int64      `json:"salary_minor"`
	HiredAt      time.Time  `json:"hired_at"`
	TerminatedAt *time.Time `json:"terminated_at,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateInput carries the fields callers may set on a new employee.
type CreateInput struct {
	Code         string    `json:"code"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	DepartmentID string    `json:"department_id"`
	Position     string    `json:"position"`
	SalaryMinor  int64     `json:"salary_minor"`
	HiredAt      time.Time `json:"hired_at"`
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	DepartmentID *string `json:"department_id"`
	Position     *string `json:"position"`
	SalaryMinor  *int64  `json:"salary_minor"`
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Search       string // matches code, name or email, case-insensitive
	DepartmentID string
	ActiveOnly   bool
	Limit        int
	Offset       int
}

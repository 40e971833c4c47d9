package departments

import "time"

// Department groups employees for reporting and approval routing.
type Department struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	ManagerID  string    `json:"manager_id,omitempty"`
	CostCenter string    `json:"cost_center,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UpdateInput is a typed partial update; nil fields are left untouched.
type UpdateInput struct {
	Name       *string `json:"name,omitempty"`
	Code       *string `json:"code,omitempty"`
	ManagerID  *string `json:"manager_id,omitempty"`
	CostCenter *string `json:"cost_center,omitempty"`
}

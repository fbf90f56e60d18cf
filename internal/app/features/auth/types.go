// internal/app/features/auth/types.go
package auth

import "time"

// registerRequest defines validation rules for account registration.
type registerRequest struct {
	Username    string     `json:"username" validate:"required,min=3,max=30"`
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=6"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	CollegeName string     `json:"college_name,omitempty" validate:"omitempty,max=100"`
	CurrentYear string     `json:"current_year,omitempty" validate:"omitempty,oneof='1st Year' '2nd Year' '3rd Year' '4th Year' Other"`
}

// loginRequest defines validation rules for credential login.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

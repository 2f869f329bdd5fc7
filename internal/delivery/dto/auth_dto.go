package dto

import (
	"strings"
	"time"
)

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RegisterPatientRequest is the patient sign-up form
type RegisterPatientRequest struct {
	FirstName       string `json:"first_name" form:"first_name" validate:"required"`
	LastName        string `json:"last_name" form:"last_name" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required"`
	Username        string `json:"username" form:"username" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"eqfield=Password"`
	Phone           string `json:"phone" form:"phone" validate:"required"`
	DateOfBirth     string `json:"date_of_birth" form:"date_of_birth" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	Gender          string `json:"gender" form:"gender" validate:"oneof=M F O"`
}

// Normalize trims the text inputs and defaults the gender to M.
// Passwords are kept as typed.
func (r *RegisterPatientRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)
	r.Phone = strings.TrimSpace(r.Phone)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.Gender = strings.TrimSpace(r.Gender)
	if r.Gender == "" {
		r.Gender = "M"
	}
}

// RegisterDoctorRequest is the doctor sign-up form
type RegisterDoctorRequest struct {
	FirstName       string `json:"first_name" form:"first_name" validate:"required"`
	LastName        string `json:"last_name" form:"last_name" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required"`
	Username        string `json:"username" form:"username" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"eqfield=Password"`
	Phone           string `json:"phone" form:"phone" validate:"required"`
	Specialization  string `json:"specialization" form:"specialization" validate:"required"`
	Experience      string `json:"experience" form:"experience" validate:"required"`
}

func (r *RegisterDoctorRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Specialization = strings.TrimSpace(r.Specialization)
	r.Experience = strings.TrimSpace(r.Experience)
}

// Response DTOs

type UserResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegisterResponse is the success state of a registration form
type RegisterResponse struct {
	User     *UserResponse `json:"user"`
	LoginURL string        `json:"login_url"`
}

// SessionResponse describes a freshly established session. The token
// travels in the session cookie, never in the body.
type SessionResponse struct {
	Token     string        `json:"-"`
	ExpiresIn int64         `json:"expires_in"`
	User      *UserResponse `json:"user"`
}

// PortalResponse links a role to its login and registration pages
type PortalResponse struct {
	Role        string `json:"role"`
	LoginURL    string `json:"login_url"`
	RegisterURL string `json:"register_url,omitempty"`
}

type HomeResponse struct {
	Portals []PortalResponse `json:"portals"`
}

// FormPageResponse is the context of a form page
type FormPageResponse struct {
	Form   string            `json:"form"`
	Fields map[string]string `json:"fields,omitempty"`
}

package dto

import (
	"time"
)

// PatientResponse represents a patient record
type PatientResponse struct {
	ID             uint      `json:"id"`
	UserID         *uint     `json:"user_id,omitempty"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	DateOfBirth    string    `json:"date_of_birth"`
	Gender         string    `json:"gender"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	MedicalHistory *string   `json:"medical_history,omitempty"`
	Allergies      *string   `json:"allergies,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

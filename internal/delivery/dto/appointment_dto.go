package dto

import "time"

type AppointmentResponse struct {
	ID              uint      `json:"id"`
	PatientID       uint      `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	DoctorID        uint      `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	Specialization  string    `json:"specialization"`
	AppointmentDate time.Time `json:"appointment_date"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
}

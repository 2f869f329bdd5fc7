package entity

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrInvalidAppointmentStatus     = errors.New("invalid appointment status")
	ErrInvalidAppointmentTransition = errors.New("appointment is no longer scheduled")
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment links a patient and a doctor at a scheduled time
type Appointment struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	PatientID       uint              `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint              `gorm:"not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"not null;index" json:"appointment_date"`
	Reason          string            `gorm:"type:text;not null" json:"reason"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes           *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// NewAppointment creates an appointment in the scheduled state
func NewAppointment(patientID, doctorID uint, at time.Time, reason string) *Appointment {
	return &Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: at,
		Reason:          reason,
		Status:          AppointmentStatusScheduled,
	}
}

func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// Complete moves a scheduled appointment to completed
func (a *Appointment) Complete() error {
	if !a.IsScheduled() {
		return fmt.Errorf("%w: status is %s", ErrInvalidAppointmentTransition, a.Status)
	}
	a.Status = AppointmentStatusCompleted
	return nil
}

// Cancel moves a scheduled appointment to cancelled
func (a *Appointment) Cancel() error {
	if !a.IsScheduled() {
		return fmt.Errorf("%w: status is %s", ErrInvalidAppointmentTransition, a.Status)
	}
	a.Status = AppointmentStatusCancelled
	return nil
}

func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	if !a.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAppointmentStatus, a.Status)
	}
	return nil
}

package entity

import (
	"strings"
	"time"
)

// Patient is a standalone medical record, optionally linked to an account
type Patient struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         *uint     `gorm:"uniqueIndex" json:"user_id,omitempty"`
	FirstName      string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email          string    `gorm:"type:varchar(254);not null;index" json:"email"`
	Phone          string    `gorm:"type:varchar(30);not null" json:"phone"`
	DateOfBirth    time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender         string    `gorm:"type:char(1);not null" json:"gender"`
	Address        string    `gorm:"type:text;not null;default:''" json:"address"`
	City           string    `gorm:"type:varchar(100);not null;default:''" json:"city"`
	MedicalHistory *string   `gorm:"type:text" json:"medical_history,omitempty"`
	Allergies      *string   `gorm:"type:text" json:"allergies,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
	Bills        []Bill        `gorm:"foreignKey:PatientID" json:"bills,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

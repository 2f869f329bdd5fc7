package entity

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNegativeExperience = errors.New("experience must not be negative")

// Doctor extends a user account with doctor-specific attributes
type Doctor struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserID         uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Specialization string `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Experience     int    `gorm:"not null;default:0" json:"experience"`
	Phone          string `gorm:"type:varchar(30);not null" json:"phone"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) Validate() error {
	if d.Experience < 0 {
		return ErrNegativeExperience
	}
	return nil
}

func (d *Doctor) BeforeSave(tx *gorm.DB) error {
	return d.Validate()
}

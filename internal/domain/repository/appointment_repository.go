package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Appointment, error)
}

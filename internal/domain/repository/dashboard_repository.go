package repository

import (
	"context"
	"time"

	"hospital-management/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// DashboardRepository holds the read-only queries behind the dashboards.
// Profile lookups return nil, nil when nothing matches. A limit <= 0 means
// no limit.
type DashboardRepository interface {
	FindUserByID(ctx context.Context, id uint) (*entity.User, error)
	FindPatientByUserID(ctx context.Context, userID uint) (*entity.Patient, error)
	FindDoctorByUserID(ctx context.Context, userID uint) (*entity.Doctor, error)

	CountDoctors(ctx context.Context) (int64, error)
	CountPatients(ctx context.Context) (int64, error)
	CountAppointments(ctx context.Context) (int64, error)
	CountAppointmentsByStatus(ctx context.Context, status entity.AppointmentStatus) (int64, error)
	CountDoctorAppointmentsByStatus(ctx context.Context, doctorID uint, status entity.AppointmentStatus) (int64, error)
	CountBillsByStatus(ctx context.Context, status entity.BillStatus) (int64, error)

	// CountScheduledByDoctor counts scheduled appointments with
	// from <= appointment_date < to, keyed by doctor id.
	CountScheduledByDoctor(ctx context.Context, from, to time.Time) (map[uint]int64, error)

	SumBillAmounts(ctx context.Context) (decimal.Decimal, error)
	SumBillAmountsByStatus(ctx context.Context, status entity.BillStatus) (decimal.Decimal, error)

	ListDoctors(ctx context.Context, limit int) ([]entity.Doctor, error)
	RecentPatients(ctx context.Context, limit int) ([]entity.Patient, error)
	RecentAppointments(ctx context.Context, limit int) ([]entity.Appointment, error)
	RecentAppointmentsByPatient(ctx context.Context, patientID uint, limit int) ([]entity.Appointment, error)
	RecentAppointmentsByDoctor(ctx context.Context, doctorID uint, limit int) ([]entity.Appointment, error)
	RecentBillsByPatient(ctx context.Context, patientID uint, limit int) ([]entity.Bill, error)
	PendingBillsByPatient(ctx context.Context, patientID uint) ([]entity.Bill, error)
}

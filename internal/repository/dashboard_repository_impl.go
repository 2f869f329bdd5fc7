package repository

import (
	"context"
	"errors"
	"time"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) domainRepo.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) FindUserByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *dashboardRepository) FindPatientByUserID(ctx context.Context, userID uint) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *dashboardRepository) FindDoctorByUserID(ctx context.Context, userID uint) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *dashboardRepository) CountDoctors(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Doctor{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountPatients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Patient{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountAppointments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountAppointmentsByStatus(ctx context.Context, status entity.AppointmentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountDoctorAppointmentsByStatus(ctx context.Context, doctorID uint, status entity.AppointmentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountBillsByStatus(ctx context.Context, status entity.BillStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountScheduledByDoctor(ctx context.Context, from, to time.Time) (map[uint]int64, error) {
	var rows []struct {
		DoctorID uint
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Select("doctor_id, COUNT(*) AS total").
		Where("status = ? AND appointment_date >= ? AND appointment_date < ?",
			entity.AppointmentStatusScheduled, from.UTC(), to.UTC()).
		Group("doctor_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.DoctorID] = row.Total
	}
	return counts, nil
}

func (r *dashboardRepository) SumBillAmounts(ctx context.Context) (decimal.Decimal, error) {
	return r.sumBills(r.db.WithContext(ctx).Model(&entity.Bill{}))
}

func (r *dashboardRepository) SumBillAmountsByStatus(ctx context.Context, status entity.BillStatus) (decimal.Decimal, error) {
	return r.sumBills(r.db.WithContext(ctx).Model(&entity.Bill{}).Where("status = ?", status))
}

func (r *dashboardRepository) sumBills(query *gorm.DB) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *dashboardRepository) ListDoctors(ctx context.Context, limit int) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	query := limitQuery(r.db.WithContext(ctx).Preload("User").Order("id"), limit)
	if err := query.Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *dashboardRepository) RecentPatients(ctx context.Context, limit int) ([]entity.Patient, error) {
	var patients []entity.Patient
	query := limitQuery(r.db.WithContext(ctx).Order("created_at DESC, id DESC"), limit)
	if err := query.Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *dashboardRepository) RecentAppointments(ctx context.Context, limit int) ([]entity.Appointment, error) {
	return r.findAppointments(r.db.WithContext(ctx), limit)
}

func (r *dashboardRepository) RecentAppointmentsByPatient(ctx context.Context, patientID uint, limit int) ([]entity.Appointment, error) {
	return r.findAppointments(r.db.WithContext(ctx).Where("patient_id = ?", patientID), limit)
}

func (r *dashboardRepository) RecentAppointmentsByDoctor(ctx context.Context, doctorID uint, limit int) ([]entity.Appointment, error) {
	return r.findAppointments(r.db.WithContext(ctx).Where("doctor_id = ?", doctorID), limit)
}

func (r *dashboardRepository) findAppointments(query *gorm.DB, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query = limitQuery(query.
		Preload("Patient").
		Preload("Doctor.User").
		Order("appointment_date DESC, id DESC"), limit)
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *dashboardRepository) RecentBillsByPatient(ctx context.Context, patientID uint, limit int) ([]entity.Bill, error) {
	var bills []entity.Bill
	query := limitQuery(r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("issue_date DESC, due_date DESC, id DESC"), limit)
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *dashboardRepository) PendingBillsByPatient(ctx context.Context, patientID uint) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND status = ?", patientID, entity.BillStatusPending).
		Order("due_date, id").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func limitQuery(query *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return query.Limit(limit)
	}
	return query
}

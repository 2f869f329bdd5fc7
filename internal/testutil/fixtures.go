package testutil

import (
	"fmt"
	"testing"
	"time"

	"hospital-management/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser stores an active account with the given role and password.
func CreateUser(t *testing.T, db *gorm.DB, username, password string, roleID int, staff bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		RoleID:    roleID,
		Username:  username,
		Email:     fmt.Sprintf("%s@hospital.test", username),
		Password:  string(hash),
		FirstName: "Test",
		LastName:  username,
		IsStaff:   staff,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateDoctor stores a doctor account with its profile.
func CreateDoctor(t *testing.T, db *gorm.DB, username string) *entity.Doctor {
	t.Helper()
	user := CreateUser(t, db, username, "password123", entity.RoleIDDoctor, false)
	doctor := &entity.Doctor{
		UserID:         user.ID,
		Specialization: "Cardiology",
		Experience:     5,
		Phone:          "555-0100",
	}
	require.NoError(t, db.Create(doctor).Error)
	doctor.User = *user
	return doctor
}

// CreatePatient stores a patient record, linked to userID when it is not nil.
func CreatePatient(t *testing.T, db *gorm.DB, firstName string, userID *uint) *entity.Patient {
	t.Helper()
	patient := &entity.Patient{
		UserID:      userID,
		FirstName:   firstName,
		LastName:    "Patient",
		Email:       fmt.Sprintf("%s@patients.test", firstName),
		Phone:       "555-0200",
		DateOfBirth: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderFemale,
	}
	require.NoError(t, db.Create(patient).Error)
	return patient
}

// CreateAppointment stores an appointment with the given status.
func CreateAppointment(t *testing.T, db *gorm.DB, patientID, doctorID uint, at time.Time, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()
	appointment := entity.NewAppointment(patientID, doctorID, at, "routine visit")
	appointment.Status = status
	require.NoError(t, db.Create(appointment).Error)
	return appointment
}

// CreateBill stores a bill issued on the given day and moved to status.
func CreateBill(t *testing.T, db *gorm.DB, patientID uint, amount string, issued time.Time, status entity.BillStatus) *entity.Bill {
	t.Helper()
	bill, err := entity.NewBill(patientID, nil, decimal.RequireFromString(amount), "treatment", issued, issued.AddDate(0, 0, 30))
	require.NoError(t, err)

	switch status {
	case entity.BillStatusPaid:
		require.NoError(t, bill.MarkPaid(issued.AddDate(0, 0, 5)))
	case entity.BillStatusOverdue:
		require.NoError(t, bill.MarkOverdue())
	}
	require.NoError(t, db.Create(bill).Error)
	return bill
}

package seeder

import (
	"context"
	"io"
	"testing"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/repository"
	"hospital-management/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newSeeder(t *testing.T) (*Seeder, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(
		db,
		log,
		repository.NewRoleRepository(),
		repository.NewUserRepository(),
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		repository.NewAppointmentRepository(),
		repository.NewBillRepository(),
	), db
}

func smallOptions() Options {
	return Options{
		Doctors:                  3,
		Patients:                 6,
		PatientsWithAppointments: 4,
		PatientsWithBills:        5,
		Seed:                     42,
	}
}

func TestRun_CreatesAccountsAndRecords(t *testing.T) {
	s, db := newSeeder(t)

	result, err := s.Run(context.Background(), smallOptions())
	require.NoError(t, err)

	assert.True(t, result.AdminCreated)
	assert.Equal(t, 3, result.Doctors)
	assert.Equal(t, 3, result.DoctorsCreated)
	assert.Equal(t, 6, result.Patients)
	assert.GreaterOrEqual(t, result.Appointments, 4)
	assert.LessOrEqual(t, result.Appointments, 12)
	assert.GreaterOrEqual(t, result.Bills, 5)
	assert.LessOrEqual(t, result.Bills, 25)

	var admin entity.User
	require.NoError(t, db.Where("username = ?", AdminUsername).First(&admin).Error)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)
	assert.Equal(t, entity.RoleIDAdmin, admin.RoleID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(AdminPassword)))

	var doctorUser entity.User
	require.NoError(t, db.Where("username = ?", "doctor1").First(&doctorUser).Error)
	assert.Equal(t, entity.RoleIDDoctor, doctorUser.RoleID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(doctorUser.Password), []byte(DoctorPassword)))

	var doctors []entity.Doctor
	require.NoError(t, db.Find(&doctors).Error)
	for _, d := range doctors {
		assert.Contains(t, specializations, d.Specialization)
		assert.GreaterOrEqual(t, d.Experience, 2)
		assert.LessOrEqual(t, d.Experience, 25)
	}

	var patients []entity.Patient
	require.NoError(t, db.Find(&patients).Error)
	for _, p := range patients {
		assert.Nil(t, p.UserID)
	}
}

func TestRun_BillsKeepPaidDateConsistent(t *testing.T) {
	s, db := newSeeder(t)

	_, err := s.Run(context.Background(), smallOptions())
	require.NoError(t, err)

	var bills []entity.Bill
	require.NoError(t, db.Find(&bills).Error)
	require.NotEmpty(t, bills)
	for _, b := range bills {
		assert.Equal(t, b.Status == entity.BillStatusPaid, b.PaidDate != nil, "bill %d", b.ID)
		assert.True(t, b.DueDate.Equal(b.IssueDate.AddDate(0, 0, 30)), "bill %d", b.ID)
		assert.True(t, b.Amount.GreaterThanOrEqual(decimal.RequireFromString("100")), "bill %d", b.ID)
		assert.True(t, b.Amount.LessThanOrEqual(decimal.RequireFromString("5000")), "bill %d", b.ID)
	}

	var appointments []entity.Appointment
	require.NoError(t, db.Find(&appointments).Error)
	for _, a := range appointments {
		assert.True(t, a.Status.Valid())
	}
}

func TestRun_IsIdempotentForAccounts(t *testing.T) {
	s, db := newSeeder(t)
	ctx := context.Background()

	_, err := s.Run(ctx, smallOptions())
	require.NoError(t, err)

	second, err := s.Run(ctx, smallOptions())
	require.NoError(t, err)
	assert.False(t, second.AdminCreated)
	assert.Equal(t, 0, second.DoctorsCreated)
	assert.Equal(t, 3, second.Doctors)

	var admins, doctorUsers, doctorProfiles, patients int64
	require.NoError(t, db.Model(&entity.User{}).Where("username = ?", AdminUsername).Count(&admins).Error)
	require.NoError(t, db.Model(&entity.User{}).Where("role_id = ?", entity.RoleIDDoctor).Count(&doctorUsers).Error)
	require.NoError(t, db.Model(&entity.Doctor{}).Count(&doctorProfiles).Error)
	require.NoError(t, db.Model(&entity.Patient{}).Count(&patients).Error)

	assert.Equal(t, int64(1), admins)
	assert.Equal(t, int64(3), doctorUsers)
	assert.Equal(t, int64(3), doctorProfiles)
	assert.Equal(t, int64(12), patients)
}

func TestRun_NoDoctorsSkipsAppointments(t *testing.T) {
	s, _ := newSeeder(t)
	opts := smallOptions()
	opts.Doctors = 0

	result, err := s.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Appointments)
	assert.GreaterOrEqual(t, result.Bills, 5)
}

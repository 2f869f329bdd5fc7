// Package seeder fills a database with demo accounts, patients, appointments
// and bills.
package seeder

import (
	"context"
	"fmt"
	"time"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AdminUsername  = "admin"
	AdminPassword  = "admin123"
	DoctorPassword = "password123"
)

var specializations = []string{
	"Cardiology", "Neurology", "Orthopedics", "Pediatrics", "General Surgery",
	"Gynecology", "Dermatology", "ENT", "Psychiatry", "Oncology",
}

var (
	appointmentOutcomes = []entity.AppointmentStatus{
		entity.AppointmentStatusScheduled,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCancelled,
	}
	billOutcomes = []entity.BillStatus{
		entity.BillStatusPending,
		entity.BillStatusPaid,
		entity.BillStatusOverdue,
	}
)

// Options controls how much data a run creates. A zero Seed picks a random one.
type Options struct {
	Doctors                  int
	Patients                 int
	PatientsWithAppointments int
	PatientsWithBills        int
	Seed                     uint64
}

func DefaultOptions() Options {
	return Options{
		Doctors:                  15,
		Patients:                 50,
		PatientsWithAppointments: 30,
		PatientsWithBills:        40,
	}
}

// Result counts what a run created or found.
type Result struct {
	AdminCreated   bool
	DoctorsCreated int
	Doctors        int
	Patients       int
	Appointments   int
	Bills          int
}

type Seeder struct {
	db              *gorm.DB
	log             *logrus.Logger
	roleRepo        repository.RoleRepository
	userRepo        repository.UserRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	billRepo        repository.BillRepository
	now             func() time.Time
}

func New(
	db *gorm.DB,
	log *logrus.Logger,
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	billRepo repository.BillRepository,
) *Seeder {
	return &Seeder{
		db:              db,
		log:             log,
		roleRepo:        roleRepo,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		billRepo:        billRepo,
		now:             time.Now,
	}
}

// Run seeds everything in one transaction. The admin and doctor accounts are
// reused when they already exist; patients and their records are always new.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	faker := gofakeit.New(opts.Seed)
	result := &Result{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.roleRepo.EnsureDefaults(ctx, tx); err != nil {
			return fmt.Errorf("ensure roles: %w", err)
		}

		adminRole, err := s.findRole(ctx, tx, entity.RoleAdmin)
		if err != nil {
			return err
		}
		doctorRole, err := s.findRole(ctx, tx, entity.RoleDoctor)
		if err != nil {
			return err
		}

		created, err := s.seedAdmin(ctx, tx, adminRole.ID)
		if err != nil {
			return err
		}
		result.AdminCreated = created

		doctors, err := s.seedDoctors(ctx, tx, faker, doctorRole.ID, opts.Doctors, result)
		if err != nil {
			return err
		}
		result.Doctors = len(doctors)

		patients, err := s.seedPatients(ctx, tx, faker, opts.Patients)
		if err != nil {
			return err
		}
		result.Patients = len(patients)

		if len(doctors) > 0 {
			for _, patient := range head(patients, opts.PatientsWithAppointments) {
				n, err := s.seedAppointments(ctx, tx, faker, patient, doctors)
				if err != nil {
					return err
				}
				result.Appointments += n
			}
		}

		for _, patient := range head(patients, opts.PatientsWithBills) {
			n, err := s.seedBills(ctx, tx, faker, patient)
			if err != nil {
				return err
			}
			result.Bills += n
		}
		return nil
	})
	if err != nil {
		s.log.Warnf("Failed to seed database: %+v", err)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"admin_created":   result.AdminCreated,
		"doctors":         result.Doctors,
		"doctors_created": result.DoctorsCreated,
		"patients":        result.Patients,
		"appointments":    result.Appointments,
		"bills":           result.Bills,
	}).Info("Database seeded")

	return result, nil
}

func (s *Seeder) findRole(ctx context.Context, tx *gorm.DB, name string) (*entity.Role, error) {
	role, err := s.roleRepo.FindByName(ctx, tx, name)
	if err != nil {
		return nil, fmt.Errorf("find role %s: %w", name, err)
	}
	if role == nil {
		return nil, fmt.Errorf("role %s is missing", name)
	}
	return role, nil
}

func (s *Seeder) seedAdmin(ctx context.Context, tx *gorm.DB, roleID int) (bool, error) {
	existing, err := s.userRepo.FindByUsername(ctx, tx, AdminUsername)
	if err != nil {
		return false, fmt.Errorf("find admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := &entity.User{
		RoleID:      roleID,
		Username:    AdminUsername,
		Email:       "admin@hospital.com",
		Password:    string(hash),
		FirstName:   "Hospital",
		LastName:    "Administrator",
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := s.userRepo.Create(ctx, tx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

func (s *Seeder) seedDoctors(ctx context.Context, tx *gorm.DB, faker *gofakeit.Faker, roleID, count int, result *Result) ([]entity.Doctor, error) {
	var hash []byte
	doctors := make([]entity.Doctor, 0, count)

	for i := 1; i <= count; i++ {
		username := fmt.Sprintf("doctor%d", i)
		user, err := s.userRepo.FindByUsername(ctx, tx, username)
		if err != nil {
			return nil, fmt.Errorf("find %s: %w", username, err)
		}

		if user == nil {
			if hash == nil {
				if hash, err = bcrypt.GenerateFromPassword([]byte(DoctorPassword), bcrypt.DefaultCost); err != nil {
					return nil, err
				}
			}
			user = &entity.User{
				RoleID:    roleID,
				Username:  username,
				Email:     fmt.Sprintf("%s@hospital.com", username),
				Password:  string(hash),
				FirstName: faker.FirstName(),
				LastName:  faker.LastName(),
				IsActive:  true,
			}
			if err := s.userRepo.Create(ctx, tx, user); err != nil {
				return nil, fmt.Errorf("create %s: %w", username, err)
			}
		}

		doctor, err := s.doctorRepo.FindByUserID(ctx, tx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("find doctor profile for %s: %w", username, err)
		}
		if doctor == nil {
			doctor = &entity.Doctor{
				UserID:         user.ID,
				Specialization: faker.RandomString(specializations),
				Experience:     faker.IntRange(2, 25),
				Phone:          faker.Phone(),
			}
			if err := s.doctorRepo.Create(ctx, tx, doctor); err != nil {
				return nil, fmt.Errorf("create doctor profile for %s: %w", username, err)
			}
			result.DoctorsCreated++
		}
		doctors = append(doctors, *doctor)
	}
	return doctors, nil
}

func (s *Seeder) seedPatients(ctx context.Context, tx *gorm.DB, faker *gofakeit.Faker, count int) ([]entity.Patient, error) {
	today := s.now()
	patients := make([]entity.Patient, 0, count)

	for i := 0; i < count; i++ {
		patient := &entity.Patient{
			FirstName:   faker.FirstName(),
			LastName:    faker.LastName(),
			Email:       faker.Email(),
			Phone:       faker.Phone(),
			DateOfBirth: entity.DateOnly(faker.DateRange(today.AddDate(-80, 0, 0), today.AddDate(-18, 0, 0))),
			Gender:      faker.RandomString([]string{entity.GenderMale, entity.GenderFemale, entity.GenderOther}),
			Address:     faker.Street(),
			City:        faker.City(),
		}
		if faker.Bool() {
			history := faker.LoremIpsumSentence(10)
			patient.MedicalHistory = &history
		}
		if faker.Bool() {
			allergy := faker.Word()
			patient.Allergies = &allergy
		}
		if err := s.patientRepo.Create(ctx, tx, patient); err != nil {
			return nil, fmt.Errorf("create patient: %w", err)
		}
		patients = append(patients, *patient)
	}
	return patients, nil
}

func (s *Seeder) seedAppointments(ctx context.Context, tx *gorm.DB, faker *gofakeit.Faker, patient entity.Patient, doctors []entity.Doctor) (int, error) {
	n := faker.IntRange(1, 3)
	for i := 0; i < n; i++ {
		doctor := doctors[faker.IntRange(0, len(doctors)-1)]
		at := s.now().AddDate(0, 0, faker.IntRange(-60, 30))

		appointment := entity.NewAppointment(patient.ID, doctor.ID, at, faker.LoremIpsumSentence(8))
		if faker.Bool() {
			notes := faker.LoremIpsumSentence(12)
			appointment.Notes = &notes
		}

		var err error
		switch appointmentOutcomes[faker.IntRange(0, len(appointmentOutcomes)-1)] {
		case entity.AppointmentStatusCompleted:
			err = appointment.Complete()
		case entity.AppointmentStatusCancelled:
			err = appointment.Cancel()
		}
		if err != nil {
			return i, err
		}

		if err := s.appointmentRepo.Create(ctx, tx, appointment); err != nil {
			return i, fmt.Errorf("create appointment: %w", err)
		}
	}
	return n, nil
}

func (s *Seeder) seedBills(ctx context.Context, tx *gorm.DB, faker *gofakeit.Faker, patient entity.Patient) (int, error) {
	appointments, err := s.appointmentRepo.FindByPatientID(ctx, tx, patient.ID)
	if err != nil {
		return 0, fmt.Errorf("find appointments: %w", err)
	}

	n := faker.IntRange(1, 5)
	for i := 0; i < n; i++ {
		issued := s.now().AddDate(0, 0, -faker.IntRange(0, 90))
		amount := decimal.NewFromFloat(faker.Float64Range(100, 5000)).Round(2)

		var appointmentID *uint
		if len(appointments) > 0 {
			id := appointments[faker.IntRange(0, len(appointments)-1)].ID
			appointmentID = &id
		}

		bill, err := entity.NewBill(patient.ID, appointmentID, amount, faker.LoremIpsumSentence(10), issued, issued.AddDate(0, 0, 30))
		if err != nil {
			return i, err
		}

		switch billOutcomes[faker.IntRange(0, len(billOutcomes)-1)] {
		case entity.BillStatusPaid:
			err = bill.MarkPaid(issued.AddDate(0, 0, faker.IntRange(1, 30)))
		case entity.BillStatusOverdue:
			err = bill.MarkOverdue()
		}
		if err != nil {
			return i, err
		}

		if err := s.billRepo.Create(ctx, tx, bill); err != nil {
			return i, fmt.Errorf("create bill: %w", err)
		}
	}
	return n, nil
}

func head[T any](items []T, n int) []T {
	if n < 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

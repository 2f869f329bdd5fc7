package usecase

import (
	"context"
	"errors"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrNotStaff = errors.New("user is not staff")

// FreeDoctorThreshold is the number of scheduled appointments today at which
// a doctor stops counting as free.
const FreeDoctorThreshold = 3

const (
	recentOwnLimit   = 10
	recentAdminLimit = 20
	overviewLimit    = 5
	todayLayout      = "2006-01-02"
)

type DashboardUsecase interface {
	PatientDashboard(ctx context.Context, userID uint) (*dto.PatientDashboardResponse, error)
	DoctorDashboard(ctx context.Context, userID uint) (*dto.DoctorDashboardResponse, error)
	AdminDashboard(ctx context.Context, userID uint) (*dto.AdminDashboardResponse, error)
	Dashboard(ctx context.Context, userID uint) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	log           *logrus.Logger
	dashboardRepo repository.DashboardRepository
	location      *time.Location
	now           func() time.Time
}

// NewDashboardUsecase decides "today" in location using now.
func NewDashboardUsecase(
	log *logrus.Logger,
	dashboardRepo repository.DashboardRepository,
	location *time.Location,
	now func() time.Time,
) DashboardUsecase {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &dashboardUsecase{
		log:           log,
		dashboardRepo: dashboardRepo,
		location:      location,
		now:           now,
	}
}

func (u *dashboardUsecase) PatientDashboard(ctx context.Context, userID uint) (*dto.PatientDashboardResponse, error) {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalDoctors, err := u.dashboardRepo.CountDoctors(ctx)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	response := &dto.PatientDashboardResponse{
		UserType:       dto.UserTypePatient,
		User:           converter.UserToResponse(user),
		TotalDoctors:   totalDoctors,
		MyAppointments: []dto.AppointmentResponse{},
		MyBills:        []dto.BillResponse{},
		PendingBills:   []dto.BillResponse{},
	}

	patient, err := u.dashboardRepo.FindPatientByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return response, nil
	}
	response.Patient = converter.PatientToResponse(patient)

	appointments, err := u.dashboardRepo.RecentAppointmentsByPatient(ctx, patient.ID, recentOwnLimit)
	if err != nil {
		u.log.Warnf("Failed to find patient appointments: %+v", err)
		return nil, err
	}
	response.MyAppointments = converter.AppointmentsToResponses(appointments)

	bills, err := u.dashboardRepo.RecentBillsByPatient(ctx, patient.ID, recentOwnLimit)
	if err != nil {
		u.log.Warnf("Failed to find patient bills: %+v", err)
		return nil, err
	}
	response.MyBills = converter.BillsToResponses(bills)

	pending, err := u.dashboardRepo.PendingBillsByPatient(ctx, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find pending bills: %+v", err)
		return nil, err
	}
	response.PendingBills = converter.BillsToResponses(pending)

	return response, nil
}

func (u *dashboardUsecase) DoctorDashboard(ctx context.Context, userID uint) (*dto.DoctorDashboardResponse, error) {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalPatients, err := u.dashboardRepo.CountPatients(ctx)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	response := &dto.DoctorDashboardResponse{
		UserType:       dto.UserTypeDoctor,
		User:           converter.UserToResponse(user),
		TotalPatients:  totalPatients,
		MyAppointments: []dto.AppointmentResponse{},
	}

	doctor, err := u.dashboardRepo.FindDoctorByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return response, nil
	}
	response.Doctor = converter.DoctorToResponse(doctor)

	appointments, err := u.dashboardRepo.RecentAppointmentsByDoctor(ctx, doctor.ID, recentOwnLimit)
	if err != nil {
		u.log.Warnf("Failed to find doctor appointments: %+v", err)
		return nil, err
	}
	response.MyAppointments = converter.AppointmentsToResponses(appointments)

	response.ScheduledAppointments, err = u.dashboardRepo.CountDoctorAppointmentsByStatus(ctx, doctor.ID, entity.AppointmentStatusScheduled)
	if err != nil {
		u.log.Warnf("Failed to count scheduled appointments: %+v", err)
		return nil, err
	}

	response.CompletedAppointments, err = u.dashboardRepo.CountDoctorAppointmentsByStatus(ctx, doctor.ID, entity.AppointmentStatusCompleted)
	if err != nil {
		u.log.Warnf("Failed to count completed appointments: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *dashboardUsecase) AdminDashboard(ctx context.Context, userID uint) (*dto.AdminDashboardResponse, error) {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsStaff {
		return nil, ErrNotStaff
	}

	start, end := u.todayBounds()

	var (
		doctors        []entity.Doctor
		scheduledToday map[uint]int64
		appointments   []entity.Appointment
		totalBilling   decimal.Decimal
		pendingBilling decimal.Decimal
		response       = &dto.AdminDashboardResponse{
			UserType: dto.UserTypeAdmin,
			User:     converter.UserToResponse(user),
			Today:    start.Format(todayLayout),
		}
	)

	// Each read fills its own variable
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		doctors, err = u.dashboardRepo.ListDoctors(gctx, 0)
		return u.warn(err, "list doctors")
	})
	g.Go(func() (err error) {
		scheduledToday, err = u.dashboardRepo.CountScheduledByDoctor(gctx, start.UTC(), end.UTC())
		return u.warn(err, "count scheduled appointments today")
	})
	g.Go(func() (err error) {
		appointments, err = u.dashboardRepo.RecentAppointments(gctx, recentAdminLimit)
		return u.warn(err, "find recent appointments")
	})
	g.Go(func() (err error) {
		response.TotalPatients, err = u.dashboardRepo.CountPatients(gctx)
		return u.warn(err, "count patients")
	})
	g.Go(func() (err error) {
		response.TotalAppointments, err = u.dashboardRepo.CountAppointments(gctx)
		return u.warn(err, "count appointments")
	})
	g.Go(func() (err error) {
		response.ScheduledAppointments, err = u.dashboardRepo.CountAppointmentsByStatus(gctx, entity.AppointmentStatusScheduled)
		return u.warn(err, "count scheduled appointments")
	})
	g.Go(func() (err error) {
		response.CompletedAppointments, err = u.dashboardRepo.CountAppointmentsByStatus(gctx, entity.AppointmentStatusCompleted)
		return u.warn(err, "count completed appointments")
	})
	g.Go(func() (err error) {
		response.CancelledAppointments, err = u.dashboardRepo.CountAppointmentsByStatus(gctx, entity.AppointmentStatusCancelled)
		return u.warn(err, "count cancelled appointments")
	})
	g.Go(func() (err error) {
		response.PendingBills, err = u.dashboardRepo.CountBillsByStatus(gctx, entity.BillStatusPending)
		return u.warn(err, "count pending bills")
	})
	g.Go(func() (err error) {
		totalBilling, err = u.dashboardRepo.SumBillAmounts(gctx)
		return u.warn(err, "sum bills")
	})
	g.Go(func() (err error) {
		pendingBilling, err = u.dashboardRepo.SumBillAmountsByStatus(gctx, entity.BillStatusPending)
		return u.warn(err, "sum pending bills")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	response.TotalDoctors = int64(len(doctors))
	response.TotalBilling = converter.MoneyToResponse(totalBilling)
	response.PendingBilling = converter.MoneyToResponse(pendingBilling)
	response.AllAppointments = converter.AppointmentsToResponses(appointments)
	response.FreeDoctors = []dto.DoctorResponse{}
	response.DoctorsWithAppointments = make([]dto.DoctorAvailabilityResponse, 0, len(doctors))

	for i := range doctors {
		doctor := converter.DoctorToResponse(&doctors[i])
		count := scheduledToday[doctors[i].ID]
		isFree := count < FreeDoctorThreshold

		response.DoctorsWithAppointments = append(response.DoctorsWithAppointments, dto.DoctorAvailabilityResponse{
			Doctor:         *doctor,
			ScheduledToday: count,
			IsFree:         isFree,
		})
		if isFree {
			response.FreeDoctors = append(response.FreeDoctors, *doctor)
		}
	}

	return response, nil
}

func (u *dashboardUsecase) Dashboard(ctx context.Context, userID uint) (*dto.DashboardResponse, error) {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		doctors        []entity.Doctor
		patients       []entity.Patient
		appointments   []entity.Appointment
		doctorProfile  *entity.Doctor
		totalBilling   decimal.Decimal
		pendingBilling decimal.Decimal
		response       = &dto.DashboardResponse{User: converter.UserToResponse(user)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		response.TotalDoctors, err = u.dashboardRepo.CountDoctors(gctx)
		return u.warn(err, "count doctors")
	})
	g.Go(func() (err error) {
		response.TotalPatients, err = u.dashboardRepo.CountPatients(gctx)
		return u.warn(err, "count patients")
	})
	g.Go(func() (err error) {
		response.TotalAppointments, err = u.dashboardRepo.CountAppointments(gctx)
		return u.warn(err, "count appointments")
	})
	g.Go(func() (err error) {
		response.ScheduledAppointments, err = u.dashboardRepo.CountAppointmentsByStatus(gctx, entity.AppointmentStatusScheduled)
		return u.warn(err, "count scheduled appointments")
	})
	g.Go(func() (err error) {
		response.CompletedAppointments, err = u.dashboardRepo.CountAppointmentsByStatus(gctx, entity.AppointmentStatusCompleted)
		return u.warn(err, "count completed appointments")
	})
	g.Go(func() (err error) {
		response.PendingBills, err = u.dashboardRepo.CountBillsByStatus(gctx, entity.BillStatusPending)
		return u.warn(err, "count pending bills")
	})
	g.Go(func() (err error) {
		response.PaidBills, err = u.dashboardRepo.CountBillsByStatus(gctx, entity.BillStatusPaid)
		return u.warn(err, "count paid bills")
	})
	g.Go(func() (err error) {
		totalBilling, err = u.dashboardRepo.SumBillAmounts(gctx)
		return u.warn(err, "sum bills")
	})
	g.Go(func() (err error) {
		pendingBilling, err = u.dashboardRepo.SumBillAmountsByStatus(gctx, entity.BillStatusPending)
		return u.warn(err, "sum pending bills")
	})
	g.Go(func() (err error) {
		doctors, err = u.dashboardRepo.ListDoctors(gctx, overviewLimit)
		return u.warn(err, "list doctors")
	})
	g.Go(func() (err error) {
		patients, err = u.dashboardRepo.RecentPatients(gctx, overviewLimit)
		return u.warn(err, "find recent patients")
	})
	g.Go(func() (err error) {
		appointments, err = u.dashboardRepo.RecentAppointments(gctx, overviewLimit)
		return u.warn(err, "find recent appointments")
	})
	g.Go(func() (err error) {
		doctorProfile, err = u.dashboardRepo.FindDoctorByUserID(gctx, userID)
		return u.warn(err, "find doctor by user ID")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	response.IsDoctor = doctorProfile != nil
	response.TotalBilling = converter.MoneyToResponse(totalBilling)
	response.PendingBilling = converter.MoneyToResponse(pendingBilling)
	response.Doctors = converter.DoctorsToResponses(doctors)
	response.RecentPatients = converter.PatientsToResponses(patients)
	response.RecentAppointments = converter.AppointmentsToResponses(appointments)

	return response, nil
}

func (u *dashboardUsecase) findUser(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := u.dashboardRepo.FindUserByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// todayBounds returns [start of today, start of tomorrow) in the configured zone.
func (u *dashboardUsecase) todayBounds() (time.Time, time.Time) {
	now := u.now().In(u.location)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, u.location)
	return start, start.AddDate(0, 0, 1)
}

func (u *dashboardUsecase) warn(err error, action string) error {
	if err != nil {
		u.log.Warnf("Failed to %s: %+v", action, err)
	}
	return err
}

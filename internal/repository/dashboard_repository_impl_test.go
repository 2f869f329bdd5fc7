package repository

import (
	"context"
	"testing"
	"time"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

func TestDashboardRepositoryCountScheduledByDoctor(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()

	busy := testutil.CreateDoctor(t, db, "busy")
	light := testutil.CreateDoctor(t, db, "light")
	idle := testutil.CreateDoctor(t, db, "idle")
	patient := testutil.CreatePatient(t, db, "ana", nil)

	for _, hour := range []int{8, 11, 16} {
		testutil.CreateAppointment(t, db, patient.ID, busy.ID, day.Add(time.Duration(hour)*time.Hour), entity.AppointmentStatusScheduled)
	}
	testutil.CreateAppointment(t, db, patient.ID, busy.ID, day.Add(-2*time.Hour), entity.AppointmentStatusScheduled)
	testutil.CreateAppointment(t, db, patient.ID, busy.ID, day.Add(26*time.Hour), entity.AppointmentStatusScheduled)
	testutil.CreateAppointment(t, db, patient.ID, light.ID, day.Add(9*time.Hour), entity.AppointmentStatusScheduled)
	testutil.CreateAppointment(t, db, patient.ID, light.ID, day.Add(10*time.Hour), entity.AppointmentStatusScheduled)
	testutil.CreateAppointment(t, db, patient.ID, light.ID, day.Add(12*time.Hour), entity.AppointmentStatusCompleted)
	testutil.CreateAppointment(t, db, patient.ID, idle.ID, day.Add(13*time.Hour), entity.AppointmentStatusCancelled)

	counts, err := repo.CountScheduledByDoctor(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, int64(3), counts[busy.ID])
	assert.Equal(t, int64(2), counts[light.ID])
	assert.NotContains(t, counts, idle.ID)
}

func TestDashboardRepositoryDoctorAppointments(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()

	doctor := testutil.CreateDoctor(t, db, "busy")
	other := testutil.CreateDoctor(t, db, "other")
	patient := testutil.CreatePatient(t, db, "ana", nil)

	statuses := []entity.AppointmentStatus{
		entity.AppointmentStatusScheduled,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusScheduled,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusCompleted,
	}
	var latest *entity.Appointment
	for i, status := range statuses {
		latest = testutil.CreateAppointment(t, db, patient.ID, doctor.ID, day.Add(time.Duration(i+8)*time.Hour), status)
	}
	testutil.CreateAppointment(t, db, patient.ID, other.ID, day.Add(20*time.Hour), entity.AppointmentStatusScheduled)

	counts := map[entity.AppointmentStatus]int64{}
	for _, status := range []entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled} {
		n, err := repo.CountDoctorAppointmentsByStatus(ctx, doctor.ID, status)
		require.NoError(t, err)
		counts[status] = n
	}
	assert.Equal(t, map[entity.AppointmentStatus]int64{
		entity.AppointmentStatusScheduled: 2,
		entity.AppointmentStatusCompleted: 3,
		entity.AppointmentStatusCancelled: 1,
	}, counts)

	all, err := repo.RecentAppointmentsByDoctor(ctx, doctor.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, latest.ID, all[0].ID)
	assert.Equal(t, "busy", all[0].Doctor.User.Username)
	assert.Equal(t, "ana", all[0].Patient.FirstName)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].AppointmentDate.After(all[i].AppointmentDate))
	}

	recent, err := repo.RecentAppointmentsByDoctor(ctx, doctor.ID, 4)
	require.NoError(t, err)
	require.Len(t, recent, 4)
	assert.Equal(t, entity.AppointmentStatusCompleted, recent[0].Status)
	assert.Equal(t, entity.AppointmentStatusCancelled, recent[1].Status)
}

func TestDashboardRepositoryRecentPatientsNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()

	var patients []*entity.Patient
	for _, name := range []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"} {
		patients = append(patients, testutil.CreatePatient(t, db, name, nil))
	}
	// p2 registered last despite its lower id
	require.NoError(t, db.Model(patients[1]).UpdateColumn("created_at", time.Now().Add(time.Hour)).Error)

	got, err := repo.RecentPatients(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 5)

	var names []string
	for _, p := range got {
		names = append(names, p.FirstName)
	}
	assert.Equal(t, []string{"p2", "p7", "p6", "p5", "p4"}, names)
}

func TestDashboardRepositoryBillingSums(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()

	total, err := repo.SumBillAmounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.00", total.StringFixed(2))

	patient := testutil.CreatePatient(t, db, "ben", nil)
	testutil.CreateBill(t, db, patient.ID, "100.25", day, entity.BillStatusPending)
	testutil.CreateBill(t, db, patient.ID, "50.50", day, entity.BillStatusPending)
	testutil.CreateBill(t, db, patient.ID, "49.25", day, entity.BillStatusPaid)
	testutil.CreateBill(t, db, patient.ID, "10", day, entity.BillStatusOverdue)

	total, err = repo.SumBillAmounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "210.00", total.StringFixed(2))

	pending, err := repo.SumBillAmountsByStatus(ctx, entity.BillStatusPending)
	require.NoError(t, err)
	assert.Equal(t, "150.75", pending.StringFixed(2))

	count, err := repo.CountBillsByStatus(ctx, entity.BillStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestDashboardRepositoryRecentAppointmentsByPatient(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()

	doctor := testutil.CreateDoctor(t, db, "house")
	patient := testutil.CreatePatient(t, db, "cara", nil)
	other := testutil.CreatePatient(t, db, "dan", nil)

	for i := 0; i < 12; i++ {
		testutil.CreateAppointment(t, db, patient.ID, doctor.ID, day.AddDate(0, 0, -5*i), entity.AppointmentStatusCompleted)
	}
	testutil.CreateAppointment(t, db, other.ID, doctor.ID, day.AddDate(0, 0, 1), entity.AppointmentStatusScheduled)

	appointments, err := repo.RecentAppointmentsByPatient(ctx, patient.ID, 10)
	require.NoError(t, err)
	require.Len(t, appointments, 10)

	for i, appointment := range appointments {
		assert.Equal(t, patient.ID, appointment.PatientID)
		assert.True(t, appointment.AppointmentDate.Equal(day.AddDate(0, 0, -5*i)), "position %d", i)
	}
	assert.Equal(t, "house", appointments[0].Doctor.User.Username)
	assert.Equal(t, "cara", appointments[0].Patient.FirstName)

	all, err := repo.RecentAppointments(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 13)
}

func TestDashboardRepositoryPatientBills(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()

	patient := testutil.CreatePatient(t, db, "eve", nil)
	oldest := testutil.CreateBill(t, db, patient.ID, "20", day.AddDate(0, 0, -20), entity.BillStatusPaid)
	newest := testutil.CreateBill(t, db, patient.ID, "30", day, entity.BillStatusPending)
	middle := testutil.CreateBill(t, db, patient.ID, "40", day.AddDate(0, 0, -10), entity.BillStatusPending)

	bills, err := repo.RecentBillsByPatient(ctx, patient.ID, 10)
	require.NoError(t, err)
	require.Len(t, bills, 3)
	assert.Equal(t, []uint{newest.ID, middle.ID, oldest.ID}, []uint{bills[0].ID, bills[1].ID, bills[2].ID})

	pending, err := repo.PendingBillsByPatient(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, bill := range pending {
		assert.Equal(t, entity.BillStatusPending, bill.Status)
	}
}

func TestDashboardRepositoryProfileLookups(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()

	doctor := testutil.CreateDoctor(t, db, "grey")
	user := testutil.CreateUser(t, db, "frank", "secret123", entity.RoleIDPatient, false)
	patient := testutil.CreatePatient(t, db, "frank", &user.ID)

	foundDoctor, err := repo.FindDoctorByUserID(ctx, doctor.UserID)
	require.NoError(t, err)
	require.NotNil(t, foundDoctor)
	assert.Equal(t, "grey", foundDoctor.User.Username)

	foundPatient, err := repo.FindPatientByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, foundPatient)
	assert.Equal(t, patient.ID, foundPatient.ID)

	missing, err := repo.FindPatientByUserID(ctx, doctor.UserID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	foundUser, err := repo.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, foundUser)
	assert.Equal(t, entity.RolePatient, foundUser.Role.RoleName)

	doctors, err := repo.CountDoctors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), doctors)
}

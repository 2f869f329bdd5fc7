package dto

// Dashboard user types
const (
	UserTypePatient = "patient"
	UserTypeDoctor  = "doctor"
	UserTypeAdmin   = "admin"
)

type PatientDashboardResponse struct {
	UserType       string                `json:"user_type"`
	User           *UserResponse         `json:"user"`
	Patient        *PatientResponse      `json:"patient"`
	TotalDoctors   int64                 `json:"total_doctors"`
	MyAppointments []AppointmentResponse `json:"my_appointments"`
	MyBills        []BillResponse        `json:"my_bills"`
	PendingBills   []BillResponse        `json:"pending_bills"`
}

type DoctorDashboardResponse struct {
	UserType              string                `json:"user_type"`
	User                  *UserResponse         `json:"user"`
	Doctor                *DoctorResponse       `json:"doctor"`
	TotalPatients         int64                 `json:"total_patients"`
	MyAppointments        []AppointmentResponse `json:"my_appointments"`
	ScheduledAppointments int64                 `json:"scheduled_appointments"`
	CompletedAppointments int64                 `json:"completed_appointments"`
}

// DoctorAvailabilityResponse is one row of the admin per-doctor breakdown
type DoctorAvailabilityResponse struct {
	Doctor         DoctorResponse `json:"doctor"`
	ScheduledToday int64          `json:"scheduled_today"`
	IsFree         bool           `json:"is_free"`
}

type AdminDashboardResponse struct {
	UserType                string                       `json:"user_type"`
	User                    *UserResponse                `json:"user"`
	Today                   string                       `json:"today"`
	TotalDoctors            int64                        `json:"total_doctors"`
	TotalPatients           int64                        `json:"total_patients"`
	TotalAppointments       int64                        `json:"total_appointments"`
	TotalBilling            MoneyResponse                `json:"total_billing"`
	PendingBilling          MoneyResponse                `json:"pending_billing"`
	ScheduledAppointments   int64                        `json:"scheduled_appointments"`
	CompletedAppointments   int64                        `json:"completed_appointments"`
	CancelledAppointments   int64                        `json:"cancelled_appointments"`
	PendingBills            int64                        `json:"pending_bills"`
	FreeDoctors             []DoctorResponse             `json:"free_doctors"`
	DoctorsWithAppointments []DoctorAvailabilityResponse `json:"doctors_with_appointments"`
	AllAppointments         []AppointmentResponse        `json:"all_appointments"`
}

// DashboardResponse is the hospital-wide overview behind /dashboard/
type DashboardResponse struct {
	User                  *UserResponse         `json:"user"`
	IsDoctor              bool                  `json:"is_doctor"`
	TotalDoctors          int64                 `json:"total_doctors"`
	TotalPatients         int64                 `json:"total_patients"`
	TotalAppointments     int64                 `json:"total_appointments"`
	TotalBilling          MoneyResponse         `json:"total_billing"`
	PendingBilling        MoneyResponse         `json:"pending_billing"`
	ScheduledAppointments int64                 `json:"scheduled_appointments"`
	CompletedAppointments int64                 `json:"completed_appointments"`
	PendingBills          int64                 `json:"pending_bills"`
	PaidBills             int64                 `json:"paid_bills"`
	Doctors               []DoctorResponse      `json:"doctors"`
	RecentPatients        []PatientResponse     `json:"recent_patients"`
	RecentAppointments    []AppointmentResponse `json:"recent_appointments"`
}

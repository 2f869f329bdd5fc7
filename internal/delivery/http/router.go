package http

import (
	"net/http"

	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	authHandler      *handler.AuthHandler
	dashboardHandler *handler.DashboardHandler
	doctorHandler    *handler.DoctorHandler
	patientHandler   *handler.PatientHandler
	auditLogHandler  *handler.AuditLogHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		authHandler:      authHandler,
		dashboardHandler: dashboardHandler,
		doctorHandler:    doctorHandler,
		patientHandler:   patientHandler,
		auditLogHandler:  auditLogHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Session loading and access logs wrap the whole router, see Handler
	r.router.Use(r.corsMiddleware.Handle)

	// Bare OPTIONS; preflights are answered by the CORS middleware
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public pages
	r.router.HandleFunc(handler.HomePath, r.authHandler.Home).Methods(http.MethodGet)
	r.router.HandleFunc(handler.PatientRegisterPath, r.authHandler.PatientRegisterPage).Methods(http.MethodGet)
	r.router.HandleFunc(handler.PatientRegisterPath, r.authHandler.RegisterPatient).Methods(http.MethodPost)
	r.router.HandleFunc(handler.DoctorRegisterPath, r.authHandler.DoctorRegisterPage).Methods(http.MethodGet)
	r.router.HandleFunc(handler.DoctorRegisterPath, r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	r.router.HandleFunc(handler.PatientLoginPath, r.authHandler.PatientLoginPage).Methods(http.MethodGet)
	r.router.HandleFunc(handler.PatientLoginPath, r.authHandler.PatientLogin).Methods(http.MethodPost)
	r.router.HandleFunc(handler.DoctorLoginPath, r.authHandler.DoctorLoginPage).Methods(http.MethodGet)
	r.router.HandleFunc(handler.DoctorLoginPath, r.authHandler.DoctorLogin).Methods(http.MethodPost)
	r.router.HandleFunc(handler.AdminLoginPath, r.authHandler.AdminLoginPage).Methods(http.MethodGet)
	r.router.HandleFunc(handler.AdminLoginPath, r.authHandler.AdminLogin).Methods(http.MethodPost)

	// Session routes, anonymous callers land on the matching login page
	patientOnly := r.authMiddleware.RequireSession(handler.PatientLoginPath)
	doctorOnly := r.authMiddleware.RequireSession(handler.DoctorLoginPath)
	adminOnly := r.authMiddleware.RequireSession(handler.AdminLoginPath)
	homeOnly := r.authMiddleware.RequireSession(handler.HomePath)

	r.router.Handle(handler.PatientDashboardPath, patientOnly(http.HandlerFunc(r.dashboardHandler.PatientDashboard))).Methods(http.MethodGet)
	r.router.Handle(handler.DoctorDashboardPath, doctorOnly(http.HandlerFunc(r.dashboardHandler.DoctorDashboard))).Methods(http.MethodGet)
	r.router.Handle(handler.AdminDashboardPath, adminOnly(http.HandlerFunc(r.dashboardHandler.AdminDashboard))).Methods(http.MethodGet)
	r.router.Handle(handler.DashboardPath, patientOnly(http.HandlerFunc(r.dashboardHandler.Dashboard))).Methods(http.MethodGet)
	r.router.Handle("/logout/", homeOnly(http.HandlerFunc(r.authHandler.Logout))).Methods(http.MethodGet, http.MethodPost)
	r.router.Handle("/me", homeOnly(http.HandlerFunc(r.authHandler.GetCurrentUser))).Methods(http.MethodGet)

	// Staff listings
	admin := r.router.PathPrefix("/admin/").Subrouter()
	admin.Use(adminOnly, middleware.RequireStaff)
	admin.HandleFunc("/doctors/", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/patients/", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/", r.auditLogHandler.GetRecentAuditLogs).Methods(http.MethodGet)

	return r.router
}

// Handler wraps the routes so unmatched requests are logged too. The session
// is loaded first so the access log carries the user.
func (r *Router) Handler(logging *middleware.LoggingMiddleware) http.Handler {
	return r.authMiddleware.LoadSession(logging.Handle(r.Setup()))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

package handler

import (
	"errors"
	"net/http"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
)

// Page paths
const (
	HomePath             = "/"
	PatientRegisterPath  = "/patient-register/"
	DoctorRegisterPath   = "/doctor-register/"
	PatientLoginPath     = "/patient-login/"
	DoctorLoginPath      = "/doctor-login/"
	AdminLoginPath       = "/admin-login/"
	PatientDashboardPath = "/patient-dashboard/"
	DoctorDashboardPath  = "/doctor-dashboard/"
	AdminDashboardPath   = "/admin-dashboard/"
	DashboardPath        = "/dashboard/"
)

// User facing messages
const (
	MsgPatientCreated     = "Account created successfully! Please login."
	MsgDoctorCreated      = "Doctor account created successfully! Please login."
	MsgUsernameTaken      = "Username already exists. Please choose a different one."
	MsgEmailTaken         = "Email already registered. Please use a different email."
	MsgAccountCreation    = "Error creating account. Please try again."
	MsgMissingCredentials = "Please enter both username and password."
	MsgInvalidCredentials = "Invalid username or password. Please try again."
	MsgUseDoctorLogin     = "This account is registered as a doctor. Please use doctor login."
	MsgUsePatientLogin    = "This account is not registered as a doctor. Please use patient login."
	MsgNoAdminPrivileges  = "This account does not have admin privileges. Please use appropriate login."
	MsgInvalidRequestBody = "Invalid request body"
)

type AuthHandler struct {
	authUsecase    usecase.AuthUsecase
	authMiddleware *middleware.AuthMiddleware
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, authMiddleware *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{
		authUsecase:    authUsecase,
		authMiddleware: authMiddleware,
	}
}

// Home lists the portals a visitor can choose from
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	response.Page(w, http.StatusOK, "", dto.HomeResponse{
		Portals: []dto.PortalResponse{
			{Role: string(usecase.PortalPatient), LoginURL: PatientLoginPath, RegisterURL: PatientRegisterPath},
			{Role: string(usecase.PortalDoctor), LoginURL: DoctorLoginPath, RegisterURL: DoctorRegisterPath},
			{Role: string(usecase.PortalAdmin), LoginURL: AdminLoginPath},
		},
	})
}

func (h *AuthHandler) PatientRegisterPage(w http.ResponseWriter, r *http.Request) {
	response.Page(w, http.StatusOK, "", dto.FormPageResponse{Form: "patient_register"})
}

func (h *AuthHandler) DoctorRegisterPage(w http.ResponseWriter, r *http.Request) {
	response.Page(w, http.StatusOK, "", dto.FormPageResponse{Form: "doctor_register"})
}

func (h *AuthHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := decodeForm(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, MsgInvalidRequestBody, nil)
		return
	}

	user, err := h.authUsecase.RegisterPatient(r.Context(), &req)
	if err != nil {
		h.registrationError(w, "patient_register", err)
		return
	}

	response.Page(w, http.StatusCreated, MsgPatientCreated, dto.RegisterResponse{
		User:     user,
		LoginURL: PatientLoginPath,
	})
}

func (h *AuthHandler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDoctorRequest
	if err := decodeForm(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, MsgInvalidRequestBody, nil)
		return
	}

	user, err := h.authUsecase.RegisterDoctor(r.Context(), &req)
	if err != nil {
		h.registrationError(w, "doctor_register", err)
		return
	}

	response.Page(w, http.StatusCreated, MsgDoctorCreated, dto.RegisterResponse{
		User:     user,
		LoginURL: DoctorLoginPath,
	})
}

func (h *AuthHandler) registrationError(w http.ResponseWriter, form string, err error) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.Page(w, http.StatusBadRequest, validationErr.Message, dto.FormPageResponse{
			Form:   form,
			Fields: validationErr.Fields,
		})
	case errors.Is(err, usecase.ErrUsernameTaken):
		response.Page(w, http.StatusConflict, MsgUsernameTaken, dto.FormPageResponse{Form: form})
	case errors.Is(err, usecase.ErrEmailTaken):
		response.Page(w, http.StatusConflict, MsgEmailTaken, dto.FormPageResponse{Form: form})
	case errors.Is(err, usecase.ErrAccountCreation):
		response.Page(w, http.StatusConflict, MsgAccountCreation, dto.FormPageResponse{Form: form})
	default:
		response.InternalServerError(w, "Failed to register user")
	}
}

func (h *AuthHandler) PatientLoginPage(w http.ResponseWriter, r *http.Request) {
	response.Page(w, http.StatusOK, "", dto.FormPageResponse{Form: "patient_login"})
}

func (h *AuthHandler) DoctorLoginPage(w http.ResponseWriter, r *http.Request) {
	response.Page(w, http.StatusOK, "", dto.FormPageResponse{Form: "doctor_login"})
}

func (h *AuthHandler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	response.Page(w, http.StatusOK, "", dto.FormPageResponse{Form: "admin_login"})
}

func (h *AuthHandler) PatientLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, usecase.PortalPatient, "patient_login", PatientDashboardPath)
}

func (h *AuthHandler) DoctorLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, usecase.PortalDoctor, "doctor_login", DoctorDashboardPath)
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, usecase.PortalAdmin, "admin_login", AdminDashboardPath)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, portal usecase.Portal, form, dashboardPath string) {
	var req dto.LoginRequest
	if err := decodeForm(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, MsgInvalidRequestBody, nil)
		return
	}

	session, err := h.authUsecase.Login(r.Context(), portal, &req)
	if err != nil {
		page := dto.FormPageResponse{Form: form}
		switch {
		case errors.Is(err, usecase.ErrMissingCredentials):
			response.Page(w, http.StatusBadRequest, MsgMissingCredentials, page)
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Page(w, http.StatusUnauthorized, MsgInvalidCredentials, page)
		case errors.Is(err, usecase.ErrDoctorAccount):
			response.Page(w, http.StatusForbidden, MsgUseDoctorLogin, page)
		case errors.Is(err, usecase.ErrNotDoctorAccount):
			response.Page(w, http.StatusForbidden, MsgUsePatientLogin, page)
		case errors.Is(err, usecase.ErrNoAdminPrivileges):
			response.Page(w, http.StatusForbidden, MsgNoAdminPrivileges, page)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	h.authMiddleware.SetSessionCookie(w, session.Token)
	http.Redirect(w, r, dashboardPath, http.StatusFound)
}

// Logout ends the session and always lands on the home page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.GetClaimsFromContext(r.Context()); ok {
		// A failed revoke is logged by the usecase; the cookie goes regardless
		_ = h.authUsecase.Logout(r.Context(), claims)
	}

	h.authMiddleware.ClearSessionCookie(w)
	http.Redirect(w, r, HomePath, http.StatusFound)
}

func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalServerError(w, "Failed to get current user")
		return
	}

	response.Success(w, http.StatusOK, "", user)
}

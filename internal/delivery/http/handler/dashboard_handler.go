package handler

import (
	"errors"
	"net/http"

	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) PatientDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, PatientLoginPath, http.StatusFound)
		return
	}

	dashboard, err := h.dashboardUsecase.PatientDashboard(r.Context(), userID)
	if err != nil {
		h.dashboardError(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "", dashboard)
}

func (h *DashboardHandler) DoctorDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, DoctorLoginPath, http.StatusFound)
		return
	}

	dashboard, err := h.dashboardUsecase.DoctorDashboard(r.Context(), userID)
	if err != nil {
		h.dashboardError(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "", dashboard)
}

func (h *DashboardHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, AdminLoginPath, http.StatusFound)
		return
	}

	dashboard, err := h.dashboardUsecase.AdminDashboard(r.Context(), userID)
	if err != nil {
		h.dashboardError(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "", dashboard)
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, PatientLoginPath, http.StatusFound)
		return
	}

	dashboard, err := h.dashboardUsecase.Dashboard(r.Context(), userID)
	if err != nil {
		h.dashboardError(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "", dashboard)
}

func (h *DashboardHandler) dashboardError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotStaff):
		http.Redirect(w, r, HomePath, http.StatusFound)
	case errors.Is(err, usecase.ErrUserNotFound):
		response.NotFound(w, "User not found")
	default:
		response.InternalServerError(w, "Failed to load dashboard")
	}
}

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zatekoja/hospitalsite/internal/api/respond"
	"github.com/zatekoja/hospitalsite/internal/domain/entities"
	apperrors "github.com/zatekoja/hospitalsite/pkg/errors"
)

// Directory is the read-only catalog API consumed by DirectoryHandler
type Directory interface {
	Departments(ctx context.Context) []entities.Department
	SearchDoctors(ctx context.Context, query, departmentID string) []entities.Doctor
	DepartmentDoctors(ctx context.Context, departmentID string) ([]entities.Doctor, error)
	Timeslots(ctx context.Context) []string
}

// DirectoryHandler serves the department and doctor listings
type DirectoryHandler struct {
	directory Directory
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directory Directory) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// ListDepartments handles GET /api/departments
func (h *DirectoryHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments := h.directory.Departments(r.Context())
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"departments": departments,
		"count":       len(departments),
	})
}

// ListDoctors handles GET /api/doctors?q=&department=
func (h *DirectoryHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	doctors := h.directory.SearchDoctors(r.Context(), query.Get("q"), query.Get("department"))
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// ListDepartmentDoctors handles GET /api/departments/{id}/doctors
func (h *DirectoryHandler) ListDepartmentDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.directory.DepartmentDoctors(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// ListTimeslots handles GET /api/timeslots
func (h *DirectoryHandler) ListTimeslots(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"timeslots": h.directory.Timeslots(r.Context()),
	})
}

func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respond.Error(w, http.StatusNotFound, appErr.Message)
			return
		case apperrors.ErrorTypeValidation:
			respond.Error(w, http.StatusBadRequest, appErr.Message)
			return
		}
	}
	respond.ServerError(w, r)
}

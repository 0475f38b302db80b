package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/hospitalsite/internal/domain/entities"
	"github.com/zatekoja/hospitalsite/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hospitalsite/pkg/errors"
)

// UnknownDepartmentName is displayed when a doctor's department cannot be resolved.
const UnknownDepartmentName = "—"

// FilterDoctors returns the doctors whose name or title contains query
// (case-insensitive, surrounding whitespace ignored) and who belong to
// departmentID. An empty query or department matches everything. Order is kept.
func FilterDoctors(doctors []entities.Doctor, query, departmentID string) []entities.Doctor {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]entities.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if departmentID != "" && d.DepartmentID != departmentID {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(d.Name), q) &&
			!strings.Contains(strings.ToLower(d.Title), q) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// DoctorsForDepartment returns the doctor options for a department selector.
// An empty departmentID yields every doctor.
func DoctorsForDepartment(doctors []entities.Doctor, departmentID string) []entities.Doctor {
	return FilterDoctors(doctors, "", departmentID)
}

// DirectoryService serves read-only views of the catalog
type DirectoryService struct {
	catalog *entities.Catalog
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(catalog *entities.Catalog) *DirectoryService {
	return &DirectoryService{catalog: catalog}
}

// Departments lists every department
func (s *DirectoryService) Departments(ctx context.Context) []entities.Department {
	return s.catalog.Departments()
}

// Doctors lists every doctor
func (s *DirectoryService) Doctors(ctx context.Context) []entities.Doctor {
	return s.catalog.Doctors()
}

// Timeslots lists the bookable times
func (s *DirectoryService) Timeslots(ctx context.Context) []string {
	return s.catalog.Timeslots()
}

// SearchDoctors applies the directory filter to the catalog
func (s *DirectoryService) SearchDoctors(ctx context.Context, query, departmentID string) []entities.Doctor {
	_, span := observability.StartSpan(ctx, "DirectoryService.SearchDoctors")
	defer span.End()

	result := FilterDoctors(s.catalog.Doctors(), query, departmentID)

	observability.SetSpanAttributes(span,
		attribute.String("directory.query", query),
		attribute.String("directory.department", departmentID),
		attribute.Int("directory.results", len(result)),
	)
	return result
}

// DepartmentDoctors returns the doctors of one department. Unlike
// DoctorsForDepartment it rejects ids that are not in the catalog.
func (s *DirectoryService) DepartmentDoctors(ctx context.Context, departmentID string) ([]entities.Doctor, error) {
	if departmentID != "" {
		if _, ok := s.catalog.Department(departmentID); !ok {
			return nil, apperrors.NewNotFoundError("department not found")
		}
	}
	return DoctorsForDepartment(s.catalog.Doctors(), departmentID), nil
}

// DepartmentName resolves a department id for display
func (s *DirectoryService) DepartmentName(departmentID string) string {
	if d, ok := s.catalog.Department(departmentID); ok {
		return d.Name
	}
	return UnknownDepartmentName
}

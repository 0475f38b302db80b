package forms

import (
	"context"
	"fmt"

	"github.com/zatekoja/hospitalsite/internal/application/services"
	"github.com/zatekoja/hospitalsite/internal/domain/entities"
)

// DirectoryView is the searchable doctor list.
type DirectoryView struct {
	doctors     []entities.Doctor
	departments map[string]string

	query        string
	departmentID string
}

// NewDirectoryView creates an unfiltered view
func NewDirectoryView(doctors []entities.Doctor, departments []entities.Department) *DirectoryView {
	names := make(map[string]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	return &DirectoryView{doctors: doctors, departments: names}
}

// Dispatch applies ev to the view.
func (v *DirectoryView) Dispatch(_ context.Context, ev Event) error {
	switch e := ev.(type) {
	case QueryChanged:
		v.query = e.Query
	case DepartmentFilterChanged:
		v.departmentID = e.DepartmentID
	case Reset:
		v.query, v.departmentID = "", ""
	default:
		return fmt.Errorf("directory view does not handle %T", ev)
	}
	return nil
}

func (v *DirectoryView) Query() string { return v.query }

func (v *DirectoryView) DepartmentID() string { return v.departmentID }

// Results returns the doctors matching the current query and filter
func (v *DirectoryView) Results() []entities.Doctor {
	return services.FilterDoctors(v.doctors, v.query, v.departmentID)
}

// DepartmentName resolves a department id, falling back to a dash.
func (v *DirectoryView) DepartmentName(id string) string {
	if name, ok := v.departments[id]; ok {
		return name
	}
	return services.UnknownDepartmentName
}

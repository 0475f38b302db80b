package web

import (
	"strings"

	"github.com/zatekoja/hospitalsite/internal/application/forms"
	"github.com/zatekoja/hospitalsite/internal/domain/entities"
)

// Option is one entry of a select element
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// DoctorCard is a doctor as shown in the directory grid
type DoctorCard struct {
	Key             string
	Name            string
	DepartmentID    string
	DepartmentName  string
	Title           string
	ExperienceYears int
	Languages       string
}

// DoctorsPage is the data behind GET /doctors
type DoctorsPage struct {
	Query       string
	Departments []Option
	Doctors     []DoctorCard
}

// NewDoctorsPage renders the current state of a directory view
func NewDoctorsPage(view *forms.DirectoryView, departments []entities.Department) DoctorsPage {
	results := view.Results()
	page := DoctorsPage{
		Query:       view.Query(),
		Departments: departmentOptions(departments, view.DepartmentID()),
		Doctors:     make([]DoctorCard, 0, len(results)),
	}
	for _, d := range results {
		page.Doctors = append(page.Doctors, DoctorCard{
			Key:             strings.ToLower(d.Name),
			Name:            d.Name,
			DepartmentID:    d.DepartmentID,
			DepartmentName:  view.DepartmentName(d.DepartmentID),
			Title:           d.Title,
			ExperienceYears: d.ExperienceYears,
			Languages:       strings.Join(d.Languages, ", "),
		})
	}
	return page
}

// AppointmentPage is the data behind GET and POST /appointment
type AppointmentPage struct {
	Values      map[string]string
	Departments []Option
	Doctors     []Option
	Timeslots   []Option
	Status      string
	Message     string
	Reference   string
}

// NewAppointmentPage renders the current state of an appointment form
func NewAppointmentPage(form *forms.AppointmentForm, departments []entities.Department, timeslots []string) AppointmentPage {
	values := form.Values()

	doctors := make([]Option, 0)
	for _, d := range form.DoctorOptions() {
		doctors = append(doctors, Option{Value: d.ID, Label: d.Name, Selected: d.ID == values[entities.FieldDoctor]})
	}

	times := make([]Option, 0, len(timeslots))
	for _, t := range timeslots {
		times = append(times, Option{Value: t, Label: t, Selected: t == values[entities.FieldTime]})
	}

	return AppointmentPage{
		Values:      values,
		Departments: departmentOptions(departments, values[entities.FieldDepartment]),
		Doctors:     doctors,
		Timeslots:   times,
		Status:      string(form.Status()),
		Message:     form.Message(),
		Reference:   form.Reference(),
	}
}

func departmentOptions(departments []entities.Department, selected string) []Option {
	out := make([]Option, 0, len(departments))
	for _, d := range departments {
		out = append(out, Option{Value: d.ID, Label: d.Name, Selected: d.ID == selected})
	}
	return out
}

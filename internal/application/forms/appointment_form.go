package forms

import (
	"context"
	"fmt"
	"slices"

	"github.com/zatekoja/hospitalsite/internal/application/services"
	"github.com/zatekoja/hospitalsite/internal/domain/entities"
)

// Status is the feedback state shown under the form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Submitter accepts a completed form.
type Submitter interface {
	Submit(ctx context.Context, fields map[string]string) services.SubmissionResult
}

// AppointmentForm is the appointment booking form. It is not safe for
// concurrent use; create one per request.
type AppointmentForm struct {
	doctors   []entities.Doctor
	submitter Submitter

	values    map[string]string
	options   []entities.Doctor
	status    Status
	message   string
	reference string
	missing   []string
}

// NewAppointmentForm creates an empty form offering every doctor.
func NewAppointmentForm(doctors []entities.Doctor, submitter Submitter) *AppointmentForm {
	f := &AppointmentForm{
		doctors:   doctors,
		submitter: submitter,
	}
	f.reset()
	return f
}

// Dispatch applies ev to the form.
func (f *AppointmentForm) Dispatch(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case DepartmentChanged:
		f.changeDepartment(e.DepartmentID)
	case FieldChanged:
		if e.Name == entities.FieldDepartment {
			f.changeDepartment(e.Value)
			return nil
		}
		if !slices.Contains(entities.RequiredAppointmentFields, e.Name) {
			return fmt.Errorf("unknown appointment field %q", e.Name)
		}
		if e.Name == entities.FieldDoctor && !f.offers(e.Value) {
			delete(f.values, entities.FieldDoctor)
			return nil
		}
		f.values[e.Name] = e.Value
	case Submitted:
		f.submit(ctx)
	case Reset:
		f.reset()
	default:
		return fmt.Errorf("appointment form does not handle %T", ev)
	}
	return nil
}

func (f *AppointmentForm) changeDepartment(id string) {
	f.values[entities.FieldDepartment] = id
	f.options = services.DoctorsForDepartment(f.doctors, id)

	if !f.offers(f.values[entities.FieldDoctor]) {
		delete(f.values, entities.FieldDoctor)
	}
}

// offers reports whether id is selectable; the empty choice always is.
func (f *AppointmentForm) offers(id string) bool {
	if id == "" {
		return true
	}
	return slices.ContainsFunc(f.options, func(d entities.Doctor) bool { return d.ID == id })
}

func (f *AppointmentForm) submit(ctx context.Context) {
	result := f.submitter.Submit(ctx, f.Values())
	f.message = result.Message

	if !result.Validation.OK {
		f.status = StatusError
		f.missing = result.Validation.Missing
		f.reference = ""
		return
	}

	f.reset()
	f.status = StatusSuccess
	f.message = result.Message
	f.reference = result.Reference
}

func (f *AppointmentForm) reset() {
	f.values = make(map[string]string, len(entities.RequiredAppointmentFields))
	f.options = services.DoctorsForDepartment(f.doctors, "")
	f.status = StatusIdle
	f.message = ""
	f.reference = ""
	f.missing = nil
}

// Value returns the current value of a field
func (f *AppointmentForm) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of the current field values
func (f *AppointmentForm) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// DoctorOptions returns the doctors offered for the selected department
func (f *AppointmentForm) DoctorOptions() []entities.Doctor {
	return append([]entities.Doctor(nil), f.options...)
}

func (f *AppointmentForm) Status() Status { return f.status }

func (f *AppointmentForm) Message() string { return f.message }

// Reference is the acknowledgement id of the last accepted request.
func (f *AppointmentForm) Reference() string { return f.reference }

// Missing lists the fields that failed the last submission.
func (f *AppointmentForm) Missing() []string {
	return append([]string(nil), f.missing...)
}

package entities

// Form field names of an appointment request, in display order.
const (
	FieldPatientName  = "patient-name"
	FieldPatientPhone = "patient-phone"
	FieldDepartment   = "department"
	FieldDoctor       = "doctor"
	FieldDate         = "date"
	FieldTime         = "time"
)

// RequiredAppointmentFields lists every field an appointment request must carry.
var RequiredAppointmentFields = []string{
	FieldPatientName,
	FieldPatientPhone,
	FieldDepartment,
	FieldDoctor,
	FieldDate,
	FieldTime,
}

// Feedback shown to the patient after a submission.
const (
	MessageMissingFields = "Please fill all required fields."
	MessageSubmitted     = "Your appointment request was submitted successfully. We will contact you shortly."
)

// AppointmentRequest is the transient value built from a submitted form.
// It is validated and then discarded; nothing is stored.
type AppointmentRequest struct {
	PatientName  string `json:"patient-name" form:"patient-name" validate:"required"`
	PatientPhone string `json:"patient-phone" form:"patient-phone" validate:"required"`
	DepartmentID string `json:"department" form:"department" validate:"required"`
	DoctorID     string `json:"doctor" form:"doctor" validate:"required"`
	Date         string `json:"date" form:"date" validate:"required"`
	Time         string `json:"time" form:"time" validate:"required"`
}

// Package forms holds the per-request state machines behind the appointment
// form and the doctor directory. Every change goes through Dispatch.
package forms

// Event is a user action fed to a state machine.
type Event interface {
	event()
}

// DepartmentChanged selects a department and repopulates the doctor options.
type DepartmentChanged struct {
	DepartmentID string
}

// FieldChanged sets a single form field.
type FieldChanged struct {
	Name  string
	Value string
}

// Submitted submits the current field values.
type Submitted struct{}

// Reset clears all fields and feedback.
type Reset struct{}

// QueryChanged updates the directory search box.
type QueryChanged struct {
	Query string
}

// DepartmentFilterChanged updates the directory department filter.
type DepartmentFilterChanged struct {
	DepartmentID string
}

func (DepartmentChanged) event()       {}
func (FieldChanged) event()            {}
func (Submitted) event()               {}
func (Reset) event()                   {}
func (QueryChanged) event()            {}
func (DepartmentFilterChanged) event() {}

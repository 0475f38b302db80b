package services

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/zatekoja/hospitalsite/internal/domain/entities"
	"github.com/zatekoja/hospitalsite/internal/infrastructure/observability"
)

// ValidationResult reports whether an appointment request is complete.
// Missing lists absent fields in form order.
type ValidationResult struct {
	OK      bool     `json:"ok"`
	Missing []string `json:"missing,omitempty"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// NewAppointmentRequest builds a request from raw form fields, trimming every value.
func NewAppointmentRequest(fields map[string]string) entities.AppointmentRequest {
	get := func(name string) string { return strings.TrimSpace(fields[name]) }
	return entities.AppointmentRequest{
		PatientName:  get(entities.FieldPatientName),
		PatientPhone: get(entities.FieldPatientPhone),
		DepartmentID: get(entities.FieldDepartment),
		DoctorID:     get(entities.FieldDoctor),
		Date:         get(entities.FieldDate),
		Time:         get(entities.FieldTime),
	}
}

// ValidateFields checks that every required field is present and not blank.
func ValidateFields(fields map[string]string) ValidationResult {
	req := NewAppointmentRequest(fields)
	return ValidateRequest(&req)
}

// ValidateRequest validates an already trimmed request.
func ValidateRequest(req *entities.AppointmentRequest) ValidationResult {
	err := requestValidator().Struct(req)
	if err == nil {
		return ValidationResult{OK: true}
	}

	failed := make(map[string]bool)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			failed[fe.Field()] = true
		}
	}

	result := ValidationResult{}
	for _, name := range entities.RequiredAppointmentFields {
		if failed[name] {
			result.Missing = append(result.Missing, name)
		}
	}
	return result
}

// SubmissionResult is the outcome of a submitted appointment request
type SubmissionResult struct {
	Validation ValidationResult
	Reference  string
	Message    string
}

// AppointmentService accepts appointment requests. Requests are validated,
// acknowledged with a reference id and then dropped; nothing is stored.
type AppointmentService struct {
	metrics *observability.Metrics
}

// NewAppointmentService creates a new appointment service. metrics may be nil.
func NewAppointmentService(metrics *observability.Metrics) *AppointmentService {
	return &AppointmentService{metrics: metrics}
}

// Submit validates the fields and acknowledges a complete request
func (s *AppointmentService) Submit(ctx context.Context, fields map[string]string) SubmissionResult {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.Submit")
	defer span.End()

	validation := ValidateFields(fields)
	observability.RecordSubmission(ctx, s.metrics, validation.OK)

	if !validation.OK {
		observability.LoggerFromContext(ctx).Debug().
			Strs("missing", validation.Missing).
			Msg("Appointment request rejected")
		return SubmissionResult{
			Validation: validation,
			Message:    entities.MessageMissingFields,
		}
	}

	ref := uuid.NewString()
	observability.LoggerFromContext(ctx).Info().
		Str("reference", ref).
		Str("department", strings.TrimSpace(fields[entities.FieldDepartment])).
		Str("doctor", strings.TrimSpace(fields[entities.FieldDoctor])).
		Msg("Appointment request accepted")

	return SubmissionResult{
		Validation: validation,
		Reference:  ref,
		Message:    entities.MessageSubmitted,
	}
}

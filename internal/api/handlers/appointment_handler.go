package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/zatekoja/hospitalsite/internal/api/respond"
	"github.com/zatekoja/hospitalsite/internal/application/services"
	"github.com/zatekoja/hospitalsite/internal/domain/entities"
	"github.com/zatekoja/hospitalsite/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hospitalsite/pkg/errors"
)

// AppointmentSubmitter accepts appointment requests
type AppointmentSubmitter interface {
	Submit(ctx context.Context, fields map[string]string) services.SubmissionResult
}

// AppointmentResponse is the body of POST /api/appointments
type AppointmentResponse struct {
	OK        bool     `json:"ok"`
	Message   string   `json:"message,omitempty"`
	Reference string   `json:"reference,omitempty"`
	Error     string   `json:"error,omitempty"`
	Missing   []string `json:"missing,omitempty"`
}

// AppointmentHandler handles appointment submissions
type AppointmentHandler struct {
	submitter AppointmentSubmitter
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(submitter AppointmentSubmitter) *AppointmentHandler {
	return &AppointmentHandler{submitter: submitter}
}

// CreateAppointment handles POST /api/appointments with a JSON or form body
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeAppointmentFields(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "request entity too large")
			return
		}
		observability.LoggerFromContext(r.Context()).Debug().Err(err).Msg("Rejected appointment body")
		respondWithAppError(w, r, err)
		return
	}

	result := h.submitter.Submit(r.Context(), fields)
	if !result.Validation.OK {
		respond.JSON(w, http.StatusUnprocessableEntity, AppointmentResponse{
			OK:      false,
			Error:   result.Message,
			Missing: result.Validation.Missing,
		})
		return
	}

	respond.JSON(w, http.StatusOK, AppointmentResponse{
		OK:        true,
		Message:   result.Message,
		Reference: result.Reference,
	})
}

// decodeAppointmentFields reads the known appointment fields from a JSON
// object or a urlencoded/multipart form. Non-string JSON scalars are
// stringified; unknown keys are ignored.
func decodeAppointmentFields(r *http.Request) (map[string]string, error) {
	fields := make(map[string]string, len(entities.RequiredAppointmentFields))

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var body map[string]interface{}
		if err := dec.Decode(&body); err != nil {
			return nil, apperrors.NewValidationError("invalid JSON body", err)
		}
		for _, name := range entities.RequiredAppointmentFields {
			switch v := body[name].(type) {
			case nil:
			case string:
				fields[name] = v
			case json.Number:
				fields[name] = v.String()
			case bool:
				fields[name] = strconv.FormatBool(v)
			}
		}
		return fields, nil
	}

	if err := r.ParseMultipartForm(32 << 10); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, apperrors.NewValidationError("invalid form body", err)
	}
	for _, name := range entities.RequiredAppointmentFields {
		fields[name] = r.PostFormValue(name)
	}
	return fields, nil
}

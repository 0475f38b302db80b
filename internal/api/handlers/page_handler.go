package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/zatekoja/hospitalsite/internal/api/respond"
	"github.com/zatekoja/hospitalsite/internal/application/forms"
	"github.com/zatekoja/hospitalsite/internal/domain/entities"
	"github.com/zatekoja/hospitalsite/internal/infrastructure/observability"
	"github.com/zatekoja/hospitalsite/internal/web"
)

// Catalog is what the server-rendered pages read
type Catalog interface {
	Departments(ctx context.Context) []entities.Department
	Doctors(ctx context.Context) []entities.Doctor
	Timeslots(ctx context.Context) []string
}

// PageHandler serves the server-rendered directory and booking pages
type PageHandler struct {
	catalog   Catalog
	submitter forms.Submitter
	renderer  *web.Renderer
}

// NewPageHandler creates a new page handler
func NewPageHandler(catalog Catalog, submitter forms.Submitter, renderer *web.Renderer) *PageHandler {
	return &PageHandler{catalog: catalog, submitter: submitter, renderer: renderer}
}

// GetDoctors handles GET /doctors
func (h *PageHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	departments := h.catalog.Departments(ctx)
	view := forms.NewDirectoryView(h.catalog.Doctors(ctx), departments)

	query := r.URL.Query()
	for _, ev := range []forms.Event{
		forms.QueryChanged{Query: query.Get("q")},
		forms.DepartmentFilterChanged{DepartmentID: query.Get("department")},
	} {
		if err := view.Dispatch(ctx, ev); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderDoctors(ctx, &buf, web.NewDoctorsPage(view, departments)); err != nil {
		h.fail(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

// GetAppointment handles GET /appointment. ?department= preselects a department.
func (h *PageHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form := forms.NewAppointmentForm(h.catalog.Doctors(ctx), h.submitter)

	if department := r.URL.Query().Get("department"); department != "" {
		if err := form.Dispatch(ctx, forms.DepartmentChanged{DepartmentID: department}); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	h.renderAppointment(w, r, form)
}

// PostAppointment handles POST /appointment from the HTML form
func (h *PageHandler) PostAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request entity too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	form := forms.NewAppointmentForm(h.catalog.Doctors(ctx), h.submitter)

	events := []forms.Event{forms.DepartmentChanged{DepartmentID: r.PostForm.Get(entities.FieldDepartment)}}
	for _, name := range entities.RequiredAppointmentFields {
		if name == entities.FieldDepartment {
			continue
		}
		events = append(events, forms.FieldChanged{Name: name, Value: r.PostForm.Get(name)})
	}
	events = append(events, forms.Submitted{})

	for _, ev := range events {
		if err := form.Dispatch(ctx, ev); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	h.renderAppointment(w, r, form)
}

func (h *PageHandler) renderAppointment(w http.ResponseWriter, r *http.Request, form *forms.AppointmentForm) {
	ctx := r.Context()
	page := web.NewAppointmentPage(form, h.catalog.Departments(ctx), h.catalog.Timeslots(ctx))

	var buf bytes.Buffer
	if err := h.renderer.RenderAppointment(ctx, &buf, page); err != nil {
		h.fail(w, r, err)
		return
	}

	status := http.StatusOK
	if form.Status() == forms.StatusError {
		status = http.StatusUnprocessableEntity
	}
	writeHTML(w, status, &buf)
}

func (h *PageHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Failed to render page")
	respond.ServerError(w, r)
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitalsite/internal/adapters/catalog"
	"github.com/zatekoja/hospitalsite/internal/api/handlers"
	"github.com/zatekoja/hospitalsite/internal/application/services"
	"github.com/zatekoja/hospitalsite/internal/web"
)

func newPageHandler(t *testing.T) *handlers.PageHandler {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "components"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components", "header.html"),
		[]byte(`<nav><a href="/doctors">Doctors</a><a href="/appointment">Book</a></nav>`), 0o644))

	renderer, err := web.NewRenderer(dir)
	require.NoError(t, err)

	return handlers.NewPageHandler(services.NewDirectoryService(c), services.NewAppointmentService(nil), renderer)
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPageHandler_GetDoctors(t *testing.T) {
	h := newPageHandler(t)

	w := httptest.NewRecorder()
	h.GetDoctors(w, httptest.NewRequest(http.MethodGet, "/doctors?department=neurology", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "Dr. Brian Chen")
	assert.NotContains(t, body, "Dr. Alice Brown")
	assert.Contains(t, body, `aria-current="page">Doctors`)
}

func TestPageHandler_GetAppointment(t *testing.T) {
	h := newPageHandler(t)

	w := httptest.NewRecorder()
	h.GetAppointment(w, httptest.NewRequest(http.MethodGet, "/appointment?department=oncology", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<option value="oncology" selected>Oncology</option>`)
	assert.Contains(t, body, `<option value="d6">Dr. Faisal Ahmed</option>`)
	assert.NotContains(t, body, "Dr. Brian Chen")
}

func TestPageHandler_PostAppointment(t *testing.T) {
	t.Run("success resets the form", func(t *testing.T) {
		h := newPageHandler(t)

		w := httptest.NewRecorder()
		h.PostAppointment(w, postForm(url.Values{
			"patient-name":  {"Jane"},
			"patient-phone": {"555"},
			"department":    {"cardiology"},
			"doctor":        {"d1"},
			"date":          {"2026-11-02"},
			"time":          {"09:00"},
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Your appointment request was submitted successfully.")
		assert.NotContains(t, body, `value="Jane"`)
		assert.Contains(t, body, `<option value="d2">Dr. Brian Chen</option>`)
	})

	t.Run("missing fields keep the values", func(t *testing.T) {
		h := newPageHandler(t)

		w := httptest.NewRecorder()
		h.PostAppointment(w, postForm(url.Values{
			"patient-name": {"Jane"},
			"department":   {"neurology"},
			"doctor":       {"d1"},
		}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Please fill all required fields.")
		assert.Contains(t, body, `value="Jane"`)
		assert.Contains(t, body, `<option value="d2">Dr. Brian Chen</option>`)
		assert.NotContains(t, body, "Dr. Alice Brown", "doctor outside the department is discarded")
	})
}

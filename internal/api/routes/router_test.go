package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitalsite/internal/adapters/catalog"
	"github.com/zatekoja/hospitalsite/internal/api/handlers"
	"github.com/zatekoja/hospitalsite/internal/application/services"
	"github.com/zatekoja/hospitalsite/internal/web"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	public := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(public, "components"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "index.html"), []byte("<h1>HealthCare Hospital</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(public, "components", "footer.html"), []byte("<p>{{year}}</p>"), 0o644))

	c, err := catalog.Default()
	require.NoError(t, err)
	directory := services.NewDirectoryService(c)
	appointments := services.NewAppointmentService(nil)
	renderer, err := web.NewRenderer(public)
	require.NoError(t, err)

	router := NewRouter(
		handlers.NewHealthHandler(time.Now()),
		handlers.NewDirectoryHandler(directory),
		handlers.NewAppointmentHandler(appointments),
		handlers.NewPageHandler(directory, appointments, renderer),
		handlers.NewStaticHandler(public),
		nil,
		nil,
		Options{
			AllowedOrigins: []string{"*"},
			BodyLimit:      1 << 20,
			SubmitRequests: 100,
			SubmitWindow:   time.Minute,
		},
	)
	return router.SetupRoutes()
}

func do(t *testing.T, h http.Handler, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{"/healthz", "/api/health"} {
		w := do(t, h, http.MethodGet, path, "", "")
		require.Equal(t, http.StatusOK, w.Code, path)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.Contains(t, body, "uptime")
		assert.Contains(t, body, "timestamp")
	}
}

func TestRouter_HeadFollowsGet(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{"/healthz", "/api/health", "/api/doctors", "/api/departments", "/doctors", "/appointment", "/"} {
		w := do(t, h, http.MethodHead, path, "", "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := do(t, h, http.MethodHead, "/api/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_NotFoundIsNotCacheable(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/departments/nope/doctors", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = do(t, h, http.MethodGet, "/api/departments", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=300, must-revalidate", w.Header().Get("Cache-Control"))
}

func TestRouter_APINotFound(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/unknown"},
		{http.MethodGet, "/api"},
		{http.MethodPost, "/api/health"},
		{http.MethodDelete, "/api/doctors"},
		{http.MethodGet, "/api/appointments"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, "", "")
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
		})
	}
}

func TestRouter_Directory(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/doctors?q=brown", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var doctors struct {
		Doctors []struct {
			Name string `json:"name"`
		} `json:"doctors"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doctors))
	require.Equal(t, 1, doctors.Count)
	assert.Equal(t, "Dr. Alice Brown", doctors.Doctors[0].Name)

	w = do(t, h, http.MethodGet, "/api/doctors?department=x&department=neurology", "", "")
	assert.Contains(t, w.Body.String(), "Dr. Brian Chen", "last repeated parameter wins")

	w = do(t, h, http.MethodGet, "/api/departments/radiology/doctors", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/api/departments", "", "")
	assert.Contains(t, w.Body.String(), `"count":6`)
	assert.NotEmpty(t, w.Header().Get("ETag"))
}

func TestRouter_Appointments(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/appointments", `{"patient-name":"Jane"}`, "application/json")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"missing":["patient-phone","department","doctor","date","time"]`)

	form := url.Values{
		"patient-name": {"Jane"}, "patient-phone": {"555"}, "department": {"cardiology"},
		"doctor": {"d1"}, "date": {"2026-11-02"}, "time": {"09:00"},
	}
	w = do(t, h, http.MethodPost, "/api/appointments", form.Encode(), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)

	w = do(t, h, http.MethodPost, "/appointment", form.Encode(), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "submitted successfully")
}

func TestRouter_BodyLimit(t *testing.T) {
	h := newTestServer(t)

	big := `{"patient-name":"` + strings.Repeat("x", 2<<20) + `"}`
	w := do(t, h, http.MethodPost, "/api/appointments", big, "application/json")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRouter_StaticAndPages(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HealthCare Hospital")
	assert.Equal(t, "public, max-age=86400, immutable", w.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = do(t, h, http.MethodGet, "/missing.css", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/missing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/doctors?q=chen", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. Brian Chen")
	assert.Contains(t, w.Body.String(), `<header id="site-header"></header>`, "missing header fragment")
	assert.Contains(t, w.Body.String(), "<p>"+time.Now().Format("2006")+"</p>")
}

func TestRouter_CORS(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/timeslots", nil)
	req.Header.Set("Origin", "https://example.org")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/zatekoja/hospitalsite/internal/api/handlers"
	"github.com/zatekoja/hospitalsite/internal/api/middleware"
	"github.com/zatekoja/hospitalsite/internal/api/respond"
	"github.com/zatekoja/hospitalsite/internal/infrastructure/observability"
)

// Options tunes the middleware stack
type Options struct {
	AccessLog      bool
	AllowedOrigins []string
	BodyLimit      int64
	SubmitRequests int
	SubmitWindow   time.Duration
	// TrustProxyHops is the number of reverse proxies whose
	// X-Forwarded-For entries are believed. Zero ignores the header.
	TrustProxyHops int
}

// Router holds all route handlers
type Router struct {
	mux *chi.Mux

	healthHandler      *handlers.HealthHandler
	directoryHandler   *handlers.DirectoryHandler
	appointmentHandler *handlers.AppointmentHandler
	pageHandler        *handlers.PageHandler
	staticHandler      http.Handler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	opts            Options
}

// NewRouter creates a new router. cacheMiddleware and metrics may be nil.
func NewRouter(
	healthHandler *handlers.HealthHandler,
	directoryHandler *handlers.DirectoryHandler,
	appointmentHandler *handlers.AppointmentHandler,
	pageHandler *handlers.PageHandler,
	staticHandler http.Handler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	opts Options,
) *Router {
	return &Router{
		mux:                chi.NewRouter(),
		healthHandler:      healthHandler,
		directoryHandler:   directoryHandler,
		appointmentHandler: appointmentHandler,
		pageHandler:        pageHandler,
		staticHandler:      staticHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
		opts:               opts,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.Use(chimiddleware.RequestID)
	r.mux.Use(middleware.TrustedProxy(r.opts.TrustProxyHops))
	r.mux.Use(chimiddleware.GetHead)
	r.mux.Use(middleware.Observability(r.metrics))
	if r.opts.AccessLog {
		r.mux.Use(middleware.Logging)
	}
	r.mux.Use(middleware.Recover)
	r.mux.Use(middleware.SecurityHeaders())
	r.mux.Use(middleware.CORS(r.opts.AllowedOrigins))
	r.mux.Use(middleware.Compression)
	r.mux.Use(chimiddleware.RequestSize(r.opts.BodyLimit))
	r.mux.Use(middleware.ParameterPollution)
	r.mux.Use(middleware.CacheControl)

	submitLimit := middleware.SubmissionRateLimit(r.opts.SubmitRequests, r.opts.SubmitWindow)

	r.mux.Get("/healthz", r.healthHandler.GetHealth)

	r.mux.Route("/api", func(api chi.Router) {
		api.NotFound(apiNotFound)
		api.MethodNotAllowed(apiNotFound)

		api.Get("/health", r.healthHandler.GetHealth)

		api.Group(func(dir chi.Router) {
			dir.Use(middleware.ETag)
			if r.cacheMiddleware != nil {
				dir.Use(r.cacheMiddleware.Middleware)
			}
			dir.Get("/departments", r.directoryHandler.ListDepartments)
			dir.Get("/departments/{id}/doctors", r.directoryHandler.ListDepartmentDoctors)
			dir.Get("/doctors", r.directoryHandler.ListDoctors)
			dir.Get("/timeslots", r.directoryHandler.ListTimeslots)
		})

		api.With(submitLimit).Post("/appointments", r.appointmentHandler.CreateAppointment)
	})

	r.mux.Get("/doctors", r.pageHandler.GetDoctors)
	r.mux.Get("/appointment", r.pageHandler.GetAppointment)
	r.mux.With(submitLimit).Post("/appointment", r.pageHandler.PostAppointment)

	r.mux.Get("/", r.staticHandler.ServeHTTP)
	r.mux.Get("/*", r.staticHandler.ServeHTTP)

	r.mux.NotFound(http.NotFound)
	r.mux.MethodNotAllowed(http.NotFound)

	return r.mux
}

func apiNotFound(w http.ResponseWriter, _ *http.Request) {
	respond.Error(w, http.StatusNotFound, respond.MessageNotFound)
}

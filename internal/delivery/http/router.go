package http

import (
	"net/http"

	"sagra/internal/delivery/http/handler"
	"sagra/internal/delivery/http/middleware"
	"sagra/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router           *mux.Router
	log              *logrus.Logger
	authHandler      *handler.AuthHandler
	patientHandler   *handler.PatientHandler
	scheduleHandler  *handler.ScheduleHandler
	progressHandler  *handler.ProgressHandler
	analyticsHandler *handler.AnalyticsHandler
	protocolHandler  *handler.ProtocolHandler
	dataHandler      *handler.DataHandler
	auditLogHandler  *handler.AuditLogHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Patient   *handler.PatientHandler
	Schedule  *handler.ScheduleHandler
	Progress  *handler.ProgressHandler
	Analytics *handler.AnalyticsHandler
	Protocol  *handler.ProtocolHandler
	Data      *handler.DataHandler
	AuditLog  *handler.AuditLogHandler
}

func NewRouter(
	log *logrus.Logger,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		log:              log,
		authHandler:      handlers.Auth,
		patientHandler:   handlers.Patient,
		scheduleHandler:  handlers.Schedule,
		progressHandler:  handlers.Progress,
		analyticsHandler: handlers.Analytics,
		protocolHandler:  handlers.Protocol,
		dataHandler:      handlers.Data,
		auditLogHandler:  handlers.AuditLog,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/logout-all", r.authHandler.LogoutAll).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Staff routes
	staff := api.NewRoute().Subrouter()
	staff.Use(r.authMiddleware.Authenticate)

	staff.HandleFunc("/phases", r.scheduleHandler.GetAllPhases).Methods(http.MethodGet)
	staff.HandleFunc("/schedule", r.scheduleHandler.PreviewSchedule).Methods(http.MethodGet)

	staff.HandleFunc("/patients", r.patientHandler.RegisterPatient).Methods(http.MethodPost)
	staff.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id:[0-9]+}/schedule", r.scheduleHandler.GetPatientSchedule).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id:[0-9]+}/progress", r.progressHandler.GetPatientProgress).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id:[0-9]+}/progress", r.progressHandler.RecordProgress).Methods(http.MethodPost)
	staff.HandleFunc("/patients/{id:[0-9]+}/report", r.analyticsHandler.GetPatientReport).Methods(http.MethodGet)
	staff.HandleFunc("/progress/{id:[0-9]+}", r.progressHandler.UpdateProgress).Methods(http.MethodPut)

	staff.HandleFunc("/analytics/phase-duration", r.analyticsHandler.GetPhaseDurations).Methods(http.MethodGet)
	staff.HandleFunc("/analytics/success-rate", r.analyticsHandler.GetSuccessRates).Methods(http.MethodGet)
	staff.HandleFunc("/analytics/dashboard", r.analyticsHandler.GetDashboard).Methods(http.MethodGet)

	staff.HandleFunc("/protocols", r.protocolHandler.GetAllProtocols).Methods(http.MethodGet)
	staff.HandleFunc("/protocols/{name}/series", r.protocolHandler.GetSeries).Methods(http.MethodGet)
	staff.HandleFunc("/protocols/{name}/file", r.protocolHandler.DownloadProtocol).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/export", r.dataHandler.Export).Methods(http.MethodPost)
	admin.HandleFunc("/backup", r.dataHandler.Backup).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})

	// Add CORS and request logging middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(middleware.RequestLogger(r.log))

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

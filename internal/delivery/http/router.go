package http

import (
	"net/http"
	"time"

	"health-records-api/internal/delivery/http/handler"
	"health-records-api/internal/delivery/http/middleware"
	"health-records-api/internal/service"
	"health-records-api/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type RateLimit struct {
	Requests int
	Window   time.Duration
}

type Router struct {
	router           *mux.Router
	log              *logrus.Logger
	authHandler      *handler.AuthHandler
	patientHandler   *handler.PatientHandler
	clinicianHandler *handler.ClinicianHandler
	documentHandler  *handler.DocumentHandler
	auditLogHandler  *handler.AuditLogHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
	accessService    service.AccessService
	rateLimit        RateLimit
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	clinicianHandler *handler.ClinicianHandler,
	documentHandler *handler.DocumentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	accessService service.AccessService,
	rateLimit RateLimit,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		log:              log,
		authHandler:      authHandler,
		patientHandler:   patientHandler,
		clinicianHandler: clinicianHandler,
		documentHandler:  documentHandler,
		auditLogHandler:  auditLogHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
		accessService:    accessService,
		rateLimit:        rateLimit,
	}
}

func (r *Router) Setup() http.Handler {
	api := r.router.PathPrefix("/api").Subrouter()
	api.Use(middleware.RateLimit(r.rateLimit.Requests, r.rateLimit.Window))

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	api.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/refresh", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Everything else needs a valid access token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/user/{username}", r.authHandler.GetUserDetails).Methods(http.MethodGet)
	protected.HandleFunc("/me/activity", r.auditLogHandler.GetMyActivity).Methods(http.MethodGet)

	protected.HandleFunc("/register-patient", r.patientHandler.RegisterPatient).Methods(http.MethodPost)
	protected.HandleFunc("/register-clinician", r.clinicianHandler.RegisterClinician).Methods(http.MethodPost)

	protected.Handle("/patients",
		middleware.RequireClinician(r.accessService, r.log)(http.HandlerFunc(r.patientHandler.ListPatients)),
	).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patient_id:[0-9]+}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/clinicians/{clinician_id:[0-9]+}", r.clinicianHandler.GetClinician).Methods(http.MethodGet)

	// Documents
	documents := protected.PathPrefix("/patients/{patient_id:[0-9]+}/documents").Subrouter()
	documents.HandleFunc("", r.documentHandler.List).Methods(http.MethodGet)
	documents.HandleFunc("/upload", r.documentHandler.Upload).Methods(http.MethodPost)
	documents.HandleFunc("/{document_id:[0-9]+}", r.documentHandler.Get).Methods(http.MethodGet)
	documents.HandleFunc("/{document_id:[0-9]+}", r.documentHandler.Delete).Methods(http.MethodDelete)
	documents.HandleFunc("/{document_id:[0-9]+}/download", r.documentHandler.Download).Methods(http.MethodGet)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "")
	})

	// CORS and access logging wrap the whole router so preflight requests and
	// unmatched routes are covered too.
	return middleware.RequestLogger(r.log)(r.corsMiddleware.Handle(middleware.TrimTrailingSlash(r.router)))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

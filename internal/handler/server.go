// Package handler implements the HTTP handlers for the demand prediction API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, zone.go, route.go, upload.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/demand-prediction/backend/internal/domain"
)

// ZoneServicer defines the business operations the zone handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type ZoneServicer interface {
	Create(zone domain.Zone) (domain.Zone, error)
	GetByID(id int) (domain.Zone, error)
	List(filter domain.ZoneFilter) ([]domain.Zone, error)
	Update(zone domain.Zone) (domain.Zone, error)
	Delete(id int) error
}

// RouteServicer defines the business operations the route handlers depend on.
type RouteServicer interface {
	Create(route domain.Route) (domain.Route, error)
	GetByID(id uuid.UUID) (domain.Route, error)
	List(filter domain.RouteFilter) ([]domain.Route, error)
	Update(route domain.Route) (domain.Route, error)
	Delete(id uuid.UUID) error
}

// UploadServicer defines the ingestion operation the upload handler depends on.
type UploadServicer interface {
	ProcessTripFile(r io.ReaderAt, size int64, p domain.UploadParams) (domain.UploadSummary, error)
}

// UploadDefaults supplies the limit_rows / top_n_routes values used when the
// multipart form omits them.
type UploadDefaults struct {
	LimitRows  int
	TopNRoutes int
}

// Server holds the dependencies shared by all endpoint handlers.
type Server struct {
	zones          ZoneServicer
	routes         RouteServicer
	uploads        UploadServicer
	uploadDefaults UploadDefaults
	validate       *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(zones ZoneServicer, routes RouteServicer, uploads UploadServicer, defaults UploadDefaults) *Server {
	return &Server{
		zones:          zones,
		routes:         routes,
		uploads:        uploads,
		uploadDefaults: defaults,
		validate:       validator.New(),
	}
}

// Routes assembles the chi router for the full API surface.
// Middleware (request id, logging, CORS, body limits) is applied by the
// caller; this router only knows about paths and handlers.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)

	r.Route("/zones", func(r chi.Router) {
		r.Post("/", s.handleCreateZone)
		r.Get("/", s.handleListZones)
		r.Get("/{id}", s.handleGetZone)
		r.Put("/{id}", s.handleUpdateZone)
		r.Delete("/{id}", s.handleDeleteZone)
	})

	r.Route("/routes", func(r chi.Router) {
		r.Post("/", s.handleCreateRoute)
		r.Get("/", s.handleListRoutes)
		r.Get("/{id}", s.handleGetRoute)
		r.Put("/{id}", s.handleUpdateRoute)
		r.Delete("/{id}", s.handleDeleteRoute)
	})

	r.Post("/uploads/trips-parquet", s.handleUploadTrips)

	return r
}

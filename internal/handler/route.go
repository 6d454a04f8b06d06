package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/demand-prediction/backend/internal/domain"
)

// routeRequest is the JSON body for POST /routes and PUT /routes/{id}.
// Active defaults to true when omitted. The id is never taken from the
// body: creates assign one, updates take it from the path.
type routeRequest struct {
	PickupZoneID  int    `json:"pickup_zone_id"`
	DropoffZoneID int    `json:"dropoff_zone_id"`
	Name          string `json:"name"`
	Active        *bool  `json:"active"`
}

func (req routeRequest) toDomain() domain.Route {
	route := domain.Route{
		PickupZoneID:  req.PickupZoneID,
		DropoffZoneID: req.DropoffZoneID,
		Name:          req.Name,
		Active:        true,
	}
	if req.Active != nil {
		route.Active = *req.Active
	}
	return route
}

// handleCreateRoute handles POST /routes.
func (s *Server) handleCreateRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON body")
		return
	}

	created, err := s.routes.Create(req.toDomain())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleListRoutes handles GET /routes.
// Supports ?active=, ?pickup_zone_id= and ?dropoff_zone_id= equality filters.
func (s *Server) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	var filter domain.RouteFilter

	active, err := queryBool(r, "active")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	filter.Active = active

	for name, dst := range map[string]**int{
		"pickup_zone_id":  &filter.PickupZoneID,
		"dropoff_zone_id": &filter.DropoffZoneID,
	} {
		if raw := r.URL.Query().Get(name); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "validation_error",
					fmt.Sprintf("%s must be an integer", name))
				return
			}
			*dst = &v
		}
	}

	routes, err := s.routes.List(filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, routes)
}

// handleGetRoute handles GET /routes/{id}.
func (s *Server) handleGetRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := routeIDParam(w, r)
	if !ok {
		return
	}

	route, err := s.routes.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, route)
}

// handleUpdateRoute handles PUT /routes/{id}.
func (s *Server) handleUpdateRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := routeIDParam(w, r)
	if !ok {
		return
	}

	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON body")
		return
	}

	route := req.toDomain()
	route.ID = id

	updated, err := s.routes.Update(route)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteRoute handles DELETE /routes/{id}.
func (s *Server) handleDeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := routeIDParam(w, r)
	if !ok {
		return
	}

	if err := s.routes.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// routeIDParam parses the {id} path segment as a UUID, writing a 422 and
// returning ok=false when it is not one.
func routeIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "route id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

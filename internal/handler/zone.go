package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/demand-prediction/backend/internal/domain"
)

// zoneRequest is the JSON body for POST /zones and PUT /zones/{id}.
// Active defaults to true when omitted.
type zoneRequest struct {
	ID          int    `json:"id"`
	Borough     string `json:"borough"`
	ZoneName    string `json:"zone_name"`
	ServiceZone string `json:"service_zone"`
	Active      *bool  `json:"active"`
}

func (req zoneRequest) toDomain() domain.Zone {
	zone := domain.Zone{
		ID:          req.ID,
		Borough:     req.Borough,
		ZoneName:    req.ZoneName,
		ServiceZone: req.ServiceZone,
		Active:      true,
	}
	if req.Active != nil {
		zone.Active = *req.Active
	}
	return zone
}

// handleCreateZone handles POST /zones.
func (s *Server) handleCreateZone(w http.ResponseWriter, r *http.Request) {
	var req zoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON body")
		return
	}

	created, err := s.zones.Create(req.toDomain())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleListZones handles GET /zones.
// Supports ?active= and ?borough= equality filters.
func (s *Server) handleListZones(w http.ResponseWriter, r *http.Request) {
	var filter domain.ZoneFilter

	active, err := queryBool(r, "active")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	filter.Active = active

	if borough := r.URL.Query().Get("borough"); borough != "" {
		filter.Borough = &borough
	}

	zones, err := s.zones.List(filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, zones)
}

// handleGetZone handles GET /zones/{id}.
func (s *Server) handleGetZone(w http.ResponseWriter, r *http.Request) {
	id, ok := zoneIDParam(w, r)
	if !ok {
		return
	}

	zone, err := s.zones.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, zone)
}

// handleUpdateZone handles PUT /zones/{id}.
// The body id must match the path id; a mismatch is a 400, not a rename.
func (s *Server) handleUpdateZone(w http.ResponseWriter, r *http.Request) {
	id, ok := zoneIDParam(w, r)
	if !ok {
		return
	}

	var req zoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON body")
		return
	}
	if req.ID != id {
		writeError(w, http.StatusBadRequest, "invalid_input",
			fmt.Sprintf("zone id mismatch: path id=%d, payload id=%d", id, req.ID))
		return
	}

	updated, err := s.zones.Update(req.toDomain())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteZone handles DELETE /zones/{id}.
func (s *Server) handleDeleteZone(w http.ResponseWriter, r *http.Request) {
	id, ok := zoneIDParam(w, r)
	if !ok {
		return
	}

	if err := s.zones.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// zoneIDParam parses the {id} path segment as an integer, writing a 422 and
// returning ok=false when it is not one.
func zoneIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "zone id must be an integer")
		return 0, false
	}
	return id, true
}

// queryBool parses an optional boolean query parameter.
// Returns nil when the parameter is absent.
func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a boolean", name)
	}
	return &v, nil
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/demand-prediction/backend/internal/domain"
)

// errorResponse is the JSON body returned for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service-layer error onto the HTTP taxonomy:
// 404 not_found, 409 conflict, 400 invalid_input / schema_error,
// 422 validation_error, 500 otherwise.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrDuplicate):
		writeError(w, http.StatusConflict, "conflict", unwrapMessage(err))
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", unwrapMessage(err))
	case errors.Is(err, domain.ErrSchema):
		writeError(w, http.StatusBadRequest, "schema_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	default:
		slog.Error("unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.ZoneService.Create: repo.ZoneRepo.Create: zone 4:
// duplicate key" → "zone 4: duplicate key".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, prefix := range []string{
		"service.ZoneService.Create: ",
		"service.ZoneService.GetByID: ",
		"service.ZoneService.Update: ",
		"service.ZoneService.Delete: ",
		"service.RouteService.Create: ",
		"service.RouteService.GetByID: ",
		"service.RouteService.Update: ",
		"service.RouteService.Delete: ",
		"service.UploadService.ProcessTripFile: ",
		"tripfile.ReadPairCounts: ",
		"repo.ZoneRepo.Create: ",
		"repo.ZoneRepo.GetByID: ",
		"repo.ZoneRepo.Update: ",
		"repo.ZoneRepo.Delete: ",
		"repo.RouteRepo.GetByID: ",
		"repo.RouteRepo.Update: ",
		"repo.RouteRepo.Delete: ",
		"invalid input: ",
		"schema error: ",
		"validation error: ",
	} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return msg
}

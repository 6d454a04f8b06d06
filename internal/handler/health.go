package handler

import "net/http"

// healthResponse is the body returned by GET /health.
type healthResponse struct {
	Status string `json:"status"`
}

// handleHealth handles GET /health.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

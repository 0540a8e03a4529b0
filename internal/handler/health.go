package handler

import "net/http"

// healthResponse is the body returned by the health endpoint.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// GetHealth handles GET /health.
// It returns HTTP 200 when the server is running; no dependencies are probed.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: "Travel Planner API"})
}

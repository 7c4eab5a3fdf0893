package handler

import "net/http"

// ServiceVersion is reported by the root route.
const ServiceVersion = "1.0.0"

type indexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Paths   struct {
		Recommendations string `json:"recommendations"`
	} `json:"paths"`
}

// HandleIndex serves the root route with service metadata so a bare GET /
// tells callers what this service is and where the resource lives.
//
// HTTP: GET /
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	resp := indexResponse{
		Name:    "Recommendation REST API Service",
		Version: ServiceVersion,
	}
	resp.Paths.Recommendations = "/recommendations"
	writeJSON(w, http.StatusOK, resp)
}

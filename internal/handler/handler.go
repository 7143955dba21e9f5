// Package handler provides HTTP request handlers for the REST API.
package handler

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ProbeResponse represents a readiness or liveness probe response.
type ProbeResponse struct {
	Status string `json:"status"`
}

// RootResponse represents the root endpoint response.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

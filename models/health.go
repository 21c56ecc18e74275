package models

// HealthCheckResponse returns the health check response, exported for testing
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

package dto

// MessageResponse is the body of every error and of operations that return nothing else.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

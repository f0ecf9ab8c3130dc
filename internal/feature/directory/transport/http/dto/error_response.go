package dto

// ErrorResponse is the uniform error body for the directory endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

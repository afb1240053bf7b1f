package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string            `json:"error"`             // A high-level error message or code
	Details string            `json:"details,omitempty"` // More specific details about the error, if available
	Fields  map[string]string `json:"fields,omitempty"`  // Per-field validation messages
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

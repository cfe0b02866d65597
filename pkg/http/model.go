package http

// ErrorBody is the flat error envelope returned to API clients.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Code    string                 `json:"code,omitempty"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

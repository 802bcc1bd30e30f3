package errors

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "INSUFFICIENT_STOCK"
	Details string `json:"details,omitempty"` // Detailed error information (optional)
}

// Response is the envelope the HTTP error handler renders for failures.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

package response

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Hint       string      `json:"hint,omitempty"` // recovery guidance (setup/migration/retry)
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// ErrorWithHint returns an error response carrying an actionable recovery
// hint, used to keep setup problems distinguishable from transient outages.
func ErrorWithHint(statusCode int, err, hint string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
		Hint:       hint,
	}
}

package middleware

// ErrorResponse is the standardized error body used by middleware that
// terminates a request before a handler runs.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

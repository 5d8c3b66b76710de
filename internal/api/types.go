package api

import "time"

// SuccessResponse represents a successful API response
type SuccessResponse struct {
	Success  bool             `json:"success"`
	Data     interface{}      `json:"data"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Success  bool             `json:"success"`
	Error    ErrorDetail      `json:"error"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ResponseMetadata represents response metadata
type ResponseMetadata struct {
	Timestamp string `json:"timestamp"`
	TraceID   string `json:"trace_id,omitempty"`
}

// CreateSuccessResponse creates a success response
func CreateSuccessResponse(data interface{}, traceID string) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Metadata: ResponseMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			TraceID:   traceID,
		},
	}
}

// CreateErrorResponse creates an error response
func CreateErrorResponse(code, message, details, traceID string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
		Metadata: ResponseMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			TraceID:   traceID,
		},
	}
}

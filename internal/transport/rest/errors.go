package rest

import (
	"encoding/json"
	"fmt"
)

// ServiceError is a non-2xx response from the search service, decoded from
// the error envelope when present. Remote failures are surfaced as-is: the
// client performs no retry or partial-failure handling.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("search service error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("search service error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("search service error %d", e.StatusCode)
}

// errorEnvelope is the service-side error body.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newServiceError(statusCode int, requestID string, body []byte) *ServiceError {
	se := &ServiceError{StatusCode: statusCode, RequestID: requestID}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		se.Code = env.Error.Code
		se.Message = env.Error.Message
	}
	if se.Message == "" && len(body) > 0 {
		se.Message = string(body)
	}
	return se
}

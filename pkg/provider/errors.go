package provider

import (
	"net/http"
	"strconv"
)

// TransportError is returned when no HTTP response could be obtained.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is returned when the upstream answered with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string

	Body string
}

func (e *APIError) Error() string {
	status := e.Status

	if status == "" {
		status = strconv.Itoa(e.StatusCode) + " " + http.StatusText(e.StatusCode)
	}

	return "API error " + status + ": " + e.Body
}

// ReadError is returned when a successful response body could not be read.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "failed to read response: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

package practicum

import "fmt"

// TransportError wraps a failure to reach the API or read its response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to homework API failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedStatusError is returned when the API answers with a non-200 status.
type UnexpectedStatusError struct {
	StatusCode int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("homework API returned status %d", e.StatusCode)
}

// MalformedBodyError is returned when the response body is not valid JSON.
type MalformedBodyError struct {
	Err error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("decode homework API response: %v", e.Err)
}

func (e *MalformedBodyError) Unwrap() error { return e.Err }

package upstream

import (
	"errors"
	"fmt"
)

// APIError is an application-level failure: the Ukrposhta API answered with
// a non-2xx status. The body is kept verbatim for display.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Body)
}

// TransportError is a network-level failure: the request never produced an
// API response. Kept distinct from APIError so connection problems are never
// presented as backend answers.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("connection error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsAPIError reports whether err is an application-level upstream failure
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// AsTransportError reports whether err is a network-level upstream failure
func AsTransportError(err error) (*TransportError, bool) {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr, true
	}
	return nil, false
}

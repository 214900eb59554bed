package privatbank

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork           = errors.New("privatbank: network error")
	ErrMalformedResponse = errors.New("privatbank: malformed response")
	// ErrInvalidRequest means no request could be built, usually a bad base URL.
	ErrInvalidRequest = errors.New("privatbank: invalid request")
)

// NetworkError reports a failed HTTP round trip. It matches ErrNetwork.
type NetworkError struct {
	Date string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request rates for %s: %v", e.Date, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// MalformedResponseError reports a response that does not have the
// expected shape. It matches ErrMalformedResponse.
type MalformedResponseError struct {
	Date       string
	StatusCode int
	Reason     string
	Err        error
}

func (e *MalformedResponseError) Error() string {
	msg := fmt.Sprintf("malformed response for %s: %s", e.Date, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

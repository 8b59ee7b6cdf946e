package gateway

import (
	"encoding/json"
	"fmt"
)

// Result is the outcome of one backend call. It is exactly one of
// Success, CompileFailure or TransportFailure.
type Result interface {
	result()
}

// Success carries the opaque response body. Diagnostics holds compiler
// output the backend attached to a successful answer.
type Success struct {
	Body        []byte
	Diagnostics string
	ContentType string
}

// CompileFailure is the backend rejecting the submitted code. It is an
// expected outcome, not an infrastructure fault.
type CompileFailure struct {
	Diagnostics string
	Status      int
}

// TransportFailure covers everything that is not the backend's verdict on
// the code: network errors, unexpected statuses, unreadable bodies.
type TransportFailure struct {
	Message string
	Status  int
	Err     error
}

func (Success) result()          {}
func (CompileFailure) result()   {}
func (TransportFailure) result() {}

func (f TransportFailure) Error() string { return f.Message }

func (f TransportFailure) Unwrap() error { return f.Err }

// DecodeJSON unmarshals a successful body into v.
func DecodeJSON(s Success, v any) error {
	if err := json.Unmarshal(s.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

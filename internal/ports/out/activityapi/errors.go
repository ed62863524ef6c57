package activityapi

import "fmt"

// Error is a service-reported failure: a non-2xx response, with the decoded
// `detail` text when the service provided one. Transport-level failures are
// plain wrapped errors, not *Error.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("service error (status %d)", e.Status)
}

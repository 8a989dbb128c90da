package domain

import "fmt"

// FetchFailure reports that the employee list could not be retrieved:
// transport error, non-2xx status or an unreadable body.
type FetchFailure struct {
	Status int // 0 when no response was received
	Err    error
}

func (e *FetchFailure) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("list employees: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("list employees: %v", e.Err)
}

func (e *FetchFailure) Unwrap() error { return e.Err }

// MutationFailure reports a rejected or failed create, update or delete.
// Message is the backend's "error" field when the body carried one.
type MutationFailure struct {
	Op      string
	Status  int // 0 when no response was received
	Message string
	Body    []byte
	Err     error
}

func (e *MutationFailure) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s employee: status %d: %s", e.Op, e.Status, e.Message)
	case e.Err != nil && e.Status == 0:
		return fmt.Sprintf("%s employee: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s employee: status %d", e.Op, e.Status)
}

func (e *MutationFailure) Unwrap() error { return e.Err }

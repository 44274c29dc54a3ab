package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (or wrapped) by catalog operations. Callers
// branch on them with errors.Is.
var (
	// ErrNotFound wraps every miss that callers may treat as soft:
	// unknown names, retired names, and dangling replacement targets.
	ErrNotFound = errors.New("catalog: template not found")

	// ErrPendingRedirection marks a lookup that hit a redirection entry
	// still awaiting a migration decision. Never soft.
	ErrPendingRedirection = errors.New("catalog: redirection pending decision")

	// ErrBackendUnavailable marks a failed backend load. The failure is
	// not cached; the next lookup retries.
	ErrBackendUnavailable = errors.New("catalog: backend unavailable")

	// ErrDuplicateRedirect is returned when two redirection entries share
	// the same (location, old name) key.
	ErrDuplicateRedirect = errors.New("catalog: duplicate redirection entry")
)

// NotFoundReason distinguishes why a lookup produced no record.
type NotFoundReason uint8

const (
	// NotFoundMissing means no record and no redirection entry exist.
	NotFoundMissing NotFoundReason = iota
	// NotFoundIgnored means a redirection entry retired the name.
	NotFoundIgnored
	// NotFoundDangling means a replace redirection pointed at a record
	// that does not exist.
	NotFoundDangling
)

// NotFoundError reports a missed lookup together with the reason for the
// miss. It unwraps to ErrNotFound.
type NotFoundError struct {
	Type   TemplateType
	Name   string
	Reason NotFoundReason
	// Target is the replacement reference that turned out to be dangling.
	// Zero unless Reason is NotFoundDangling.
	Target RecordRef
}

var _ error = (*NotFoundError)(nil)

func (e *NotFoundError) Error() string {
	switch e.Reason {
	case NotFoundIgnored:
		return fmt.Sprintf("catalog: %s %q retired by redirection", e.Type, e.Name)
	case NotFoundDangling:
		return fmt.Sprintf("catalog: %s %q redirects to missing %s %q", e.Type, e.Name, e.Target.Type, e.Target.Name)
	default:
		return fmt.Sprintf("catalog: %s %q not found", e.Type, e.Name)
	}
}

// Unwrap makes errors.Is(err, ErrNotFound) hold for every miss reason.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// PendingRedirectionError reports a lookup blocked on an undecided
// redirection entry. It unwraps to ErrPendingRedirection.
type PendingRedirectionError struct {
	Type     TemplateType
	Name     string
	Location string
}

var _ error = (*PendingRedirectionError)(nil)

func (e *PendingRedirectionError) Error() string {
	return fmt.Sprintf("catalog: %s %q at %q has an undecided redirection entry", e.Type, e.Name, e.Location)
}

func (e *PendingRedirectionError) Unwrap() error {
	return ErrPendingRedirection
}

// BackendError reports a failed backend load for one location. The
// underlying cause is preserved for logging; errors.Is matches both the
// cause chain and ErrBackendUnavailable.
type BackendError struct {
	Type     TemplateType
	Location LocationSpec
	Err      error
}

var _ error = (*BackendError)(nil)

func (e *BackendError) Error() string {
	return fmt.Sprintf("catalog: loading %s from %s: %v", e.Type, e.Location, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is reports ErrBackendUnavailable as a match so callers can branch on the
// sentinel without losing the wrapped cause.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

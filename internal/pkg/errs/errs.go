package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to exactly one of them,
// so callers can classify failures with errors.Is.
var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrVersionIsInvalid     = errors.New("version is invalid")
	ErrGuardViolation       = errors.New("guard violation")
	ErrInvalidReference     = errors.New("invalid reference")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrPartialUploadFailure = errors.New("partial upload failure")
)

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError is returned when a referenced aggregate does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a parameter whose value breaks a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory parameter.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError is returned when an optimistic compare-and-swap on a
// row version affects nothing: somebody else committed first and the caller
// should retry with fresh state.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName), e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// GuardViolationError is returned when a command is issued against an
// aggregate whose observed state does not satisfy the command's guard.
type GuardViolationError struct {
	Operation string
	Observed  string
	Expected  string
	Cause     error
}

func NewGuardViolationError(operation, observed, expected string) *GuardViolationError {
	return &GuardViolationError{Operation: operation, Observed: observed, Expected: expected}
}

func NewGuardViolationErrorWithCause(operation, observed string, cause error) *GuardViolationError {
	return &GuardViolationError{Operation: operation, Observed: observed, Cause: cause}
}

func (e *GuardViolationError) Error() string {
	msg := fmt.Sprintf("%s: %s rejected in state %s", ErrGuardViolation, e.Operation, e.Observed)
	if e.Expected != "" {
		msg = fmt.Sprintf("%s, expected %s", msg, e.Expected)
	}
	return withCause(msg, e.Cause)
}

func (e *GuardViolationError) Unwrap() error {
	return ErrGuardViolation
}

// InvalidReferenceError is returned when a referenced object exists but is
// not usable in the requested role.
type InvalidReferenceError struct {
	ParamName string
	ID        any
	Reason    string
}

func NewInvalidReferenceError(paramName string, id any, reason string) *InvalidReferenceError {
	return &InvalidReferenceError{ParamName: paramName, ID: id, Reason: reason}
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", ErrInvalidReference, e.ParamName, sanitize(e.ID), e.Reason)
}

func (e *InvalidReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// PermissionDeniedError is returned when the acting identity lacks the
// capability an operation requires.
type PermissionDeniedError struct {
	Operation string
	Required  string
}

func NewPermissionDeniedError(operation, required string) *PermissionDeniedError {
	return &PermissionDeniedError{Operation: operation, Required: required}
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: %s requires %s", ErrPermissionDenied, e.Operation, e.Required)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// UploadFailure describes one evidence image that could not be stored.
type UploadFailure struct {
	Index    int
	FileName string
	Cause    error
}

// PartialUploadFailureError accompanies a successful stage transition when
// some of its evidence images failed. The transition is not rolled back.
type PartialUploadFailureError struct {
	Attempted int
	Failures  []UploadFailure
}

func NewPartialUploadFailureError(attempted int, failures []UploadFailure) *PartialUploadFailureError {
	return &PartialUploadFailureError{Attempted: attempted, Failures: failures}
}

func (e *PartialUploadFailureError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("#%d %s: %v", f.Index, sanitize(f.FileName), f.Cause))
	}
	return fmt.Sprintf("%s: %d of %d images failed [%s]",
		ErrPartialUploadFailure, len(e.Failures), e.Attempted, strings.Join(parts, "; "))
}

func (e *PartialUploadFailureError) Unwrap() error {
	return ErrPartialUploadFailure
}

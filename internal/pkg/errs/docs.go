// Package errs holds the typed errors the haulage core returns and the
// transport maps onto status codes.
//
// Every type pairs a sentinel with a struct carrying the details:
//   - ValueIsRequiredError, ValueIsInvalidError and ValueIsOutOfRangeError
//     reject input before anything is read or written
//   - ObjectNotFoundError and InvalidReferenceError report missing targets
//     and references that exist but cannot be used (a busy truck)
//   - GuardViolationError names the state a workflow step observed
//   - VersionIsInvalidError reports a lost optimistic update
//   - PermissionDeniedError names the capability an operation needs
//   - PartialUploadFailureError lists the evidence images that failed
//     after the step itself committed
//
// Match with errors.Is against the sentinel, or errors.As for the details.
package errs

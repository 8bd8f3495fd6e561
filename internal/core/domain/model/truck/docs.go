// Package truck holds the Fleet Registry aggregate.
//
// A truck is available for a new dispatch only when it is idle and no
// dispatch holds its claim. The claim is taken when a dispatch is created
// and released when that dispatch completes, is cancelled or is deleted, so
// the truck's visible status can stay idle while it is already spoken for.
package truck

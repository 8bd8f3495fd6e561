// Package kernel holds the primitives shared by every aggregate of the
// haulage domain: identifiers, measured quantities and the clock.
package kernel

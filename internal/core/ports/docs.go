// Package ports defines the contracts between the core and its adapters:
// repositories and the unit of work for persistence, plus the evidence
// store, the event publisher and the caller identity handed in by the
// transport.
package ports

// Package services provides domain services that work across more than one
// aggregate of the dispatch engine.
//
// The package includes:
//   - OrderDispatcher: picks a truck for a new order and creates its dispatch
//   - DispatchCascade: applies the truck, order and stock effects of a status a
//     dispatch has entered, and the compensating effects of deleting one
//
// Services mutate aggregates in memory only. Loading, locking and saving
// them is the job of the command handlers.
package services

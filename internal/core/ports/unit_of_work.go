package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
//
// Rows are locked in a fixed order, dispatch then truck then order then
// material, by every command that touches more than one of them.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	TruckRepository() TruckRepository
	OrderRepository() OrderRepository
	DispatchRepository() DispatchRepository
	MaterialRepository() MaterialRepository
	CustomerRepository() CustomerRepository
	UserRepository() UserRepository
	MediaRepository() MediaRepository
	ExceptionRepository() ExceptionRepository
}

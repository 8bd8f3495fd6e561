// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, capability check,
// transaction management, and persistence.
package commands

import (
	"context"

	"haulage/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest unit of work that covers the
// repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	TruckRepoFactory interface {
		TruckRepository() ports.TruckRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DispatchRepoFactory interface {
		DispatchRepository() ports.DispatchRepository
	}

	MaterialRepoFactory interface {
		MaterialRepository() ports.MaterialRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	MediaRepoFactory interface {
		MediaRepository() ports.MediaRepository
	}

	ExceptionRepoFactory interface {
		ExceptionRepository() ports.ExceptionRepository
	}

	// TruckUoW manages transactions for fleet management commands.
	TruckUoW interface {
		TxManager
		TruckRepoFactory
	}

	TruckUoWFactory interface {
		Create() TruckUoW
	}

	// CustomerUoW manages transactions for the customer directory.
	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
	}

	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	// MaterialUoW manages transactions for inventory ledger commands.
	MaterialUoW interface {
		TxManager
		MaterialRepoFactory
	}

	MaterialUoWFactory interface {
		Create() MaterialUoW
	}

	// UserUoW manages transactions for the user directory.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// MediaUoW records one evidence image per transaction.
	MediaUoW interface {
		TxManager
		DispatchRepoFactory
		MediaRepoFactory
	}

	MediaUoWFactory interface {
		Create() MediaUoW
	}

	// ExceptionUoW manages transactions for the exception log.
	ExceptionUoW interface {
		TxManager
		DispatchRepoFactory
		ExceptionRepoFactory
	}

	ExceptionUoWFactory interface {
		Create() ExceptionUoW
	}

	// UoW spans every aggregate the dispatch engine touches in one command:
	// orders and their auto-assignment, transitions and their cascades,
	// deletions and their rollbacks.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   d, err := uow.DispatchRepository().GetForUpdate(ctx, id)
	//   t, err := uow.TruckRepository().GetForUpdate(ctx, d.TruckID())
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		TruckRepoFactory
		OrderRepoFactory
		DispatchRepoFactory
		MaterialRepoFactory
		CustomerRepoFactory
		UserRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

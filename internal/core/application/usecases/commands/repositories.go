// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PartnerRepoFactory provides access to partner repository within a transaction.
	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	// AssignmentRepoFactory provides access to the ledger repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// MetricsRepoFactory provides access to the metrics repository within a transaction.
	MetricsRepoFactory interface {
		MetricsRepository() ports.MetricsRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PartnerUoW manages transactions for partner-only operations.
	// Used when commands only modify partner aggregates.
	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	// PartnerUoWFactory creates new partner unit of work instances.
	PartnerUoWFactory interface {
		Create() PartnerUoW
	}

	// StatusUoW manages transactions for order status transitions.
	// Transitions touch the order, release the assigned partner's load slot,
	// and on cancellation fold the cancellation metric.
	StatusUoW interface {
		TxManager
		OrderRepoFactory
		PartnerRepoFactory
		MetricsRepoFactory
	}

	// StatusUoWFactory creates new status transition unit of work instances.
	StatusUoWFactory interface {
		Create() StatusUoW
	}

	// AssignmentUoW manages transactions across every aggregate an assignment
	// attempt touches: the order, the partner, the ledger entry and the
	// metrics record.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   partnerRepo := uow.PartnerRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		PartnerRepoFactory
		AssignmentRepoFactory
		MetricsRepoFactory
	}

	// AssignmentUoWFactory creates new unit of work instances for assignment attempts.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}
)

// Package services provides domain services that orchestrate assignment decisions
// across multiple domain entities. It implements business workflows that don't
// naturally belong to a single aggregate root.
//
// The package includes:
//   - EligibilityChecker: A domain service deciding whether a partner may take an order
//   - Selector helpers for choosing among eligible partners
//   - Dispatcher: A domain service for matching delivery orders with partners
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services

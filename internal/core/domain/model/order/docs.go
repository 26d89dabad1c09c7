// Package order provides domain entities and business logic for delivery order
// management. It implements the Order aggregate root with lifecycle management
// and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, customer data,
//     scheduling, and partner assignment
//   - Status: A state machine that enforces valid order status transitions
//   - Customer and Item: Value types describing who ordered and what
//
// Key business rules:
//   - Orders must have an order number, customer contact, area, items,
//     scheduled time, and a positive total amount
//   - Order status follows a defined workflow:
//     Pending -> Assigned -> Picked -> Delivered, with cancellation possible
//     from Assigned or Picked
//   - A delivery partner reference is present exactly when the order has left
//     the Pending status
//   - Orders are never deleted; terminal statuses end the lifecycle
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order

// Package kernel provides core domain primitives shared by the dispatch domain model.
// It implements fundamental building blocks following Domain-Driven Design principles.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - TimeOfDay: A value object for wall-clock times expressed as minutes since midnight,
//     parsed from strict "HH:mm" input
//
// These primitives enforce domain invariants at construction time, are immutable,
// and are safe for concurrent use.
package kernel

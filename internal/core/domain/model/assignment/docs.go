// Package assignment provides the audit and measurement side of the dispatch
// domain: the append-only ledger of assignment attempts and the rolling
// metrics record summarizing them.
//
// The package includes:
//   - Entry: An immutable ledger record of a single assignment attempt,
//     successful or failed, with the reason that blocked it
//   - Metrics: The singleton rolling summary (total attempts folded in,
//     success rate, failure-reason histogram) with two fold modes
//   - ReasonCounts: A typed reason-to-count mapping with additive merge
//     semantics
//
// Key business rules:
//   - Ledger entries are never updated or deleted; every attempt produces
//     exactly one entry, including repeated failures for the same order
//   - Successful entries carry a partner and no reason; failed entries carry
//     a reason and, when one was considered, the rejected partner
//   - Exactly one Metrics record exists; counts and the success rate never
//     go negative, and the rate stays within [0, 100]
package assignment

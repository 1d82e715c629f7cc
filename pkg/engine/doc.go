// Package engine evaluates the waiver rules of a loaded catalog against a
// single applicant's attributes and resolves which documents remain
// required.
//
// Evaluation is a pure, synchronous predicate over an already-materialized
// catalog: no I/O, no locks, no cancellation. The policy is fail-closed
// throughout — a missing or malformed attribute never satisfies a
// condition, so the engine errs toward requiring a document rather than
// silently waiving it.
//
// # Resolution flow
//
//	For each document in catalog order:
//	  For each rule in document order:
//	    All conditions satisfied? → document waived, stop scanning rules
//	  No rule matched (or no rules at all) → document required
//
// The first matching rule wins; later rules on the same document are not
// evaluated. Output order always equals catalog order.
package engine

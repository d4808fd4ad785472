// Package lifecycle models project statuses and the lifecycle root
// directories they map to.
//
// Every project status belongs to exactly one lifecycle root:
//
//	Draft, RFP                  -> 01 RFPs
//	Active, Awarded             -> 11 Current
//	Completed                   -> 99 Completed
//	Cancelled, Lost, On Hold    -> 00 Inactive
//
// The mapping is an explicit table (RootFor) covering the closed Status set.
// Strings are parsed into a Status with ParseStatus; anything outside the
// set is rejected with ErrUnknownStatus instead of being guessed.
//
// ResolveTransition applies the mapping to both ends of a status change and
// reports whether the folder needs to move (IsNoOp) and whether the change
// is an award (IsAward), the only transition that provisions templates.
//
// The package performs no I/O.
package lifecycle

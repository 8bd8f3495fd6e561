// Package material holds the Inventory Ledger aggregate.
//
// A material is identified by its unique name. Stock only ever changes by a
// signed delta and never drops below zero: a delta that would take it
// negative clamps to zero and the caller is told so.
package material

// Package order implements the Order Book aggregate: a customer's request for a
// quantity of a named material, tracked through pending, in_progress and
// completed (or cancelled by an administrator).
//
// Key business rules:
//   - Quantity must be positive and, like the material type, never changes
//   - The dispatch engine advances status pending -> in_progress -> completed
//   - Administrators may override the status directly; overrides do not cascade
//   - Material type is free text matched by name against the inventory ledger
package order

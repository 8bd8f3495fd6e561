// Package dispatch holds the Dispatch aggregate: one truck trip fulfilling
// one order, moved through the weigh and unload workflow.
//
// There are two ways in. Staged transitions (Apply with an Action) check the
// exact predecessor state and record stage data. ForceStatus is the
// administrative correction path: it accepts any target, records no stage
// data and can skip steps. Both stamp the transit and completion times only
// the first time those states are reached.
//
// The aggregate knows nothing about trucks, orders or stock. The effects on
// those are applied by services.DispatchCascade from the status a dispatch
// entered.
package dispatch

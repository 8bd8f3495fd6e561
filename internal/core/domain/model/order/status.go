package order

import (
	"fmt"

	"haulage/internal/pkg/errs"
)

// Status is the order lifecycle state.
type Status int

const (
	// Unknown is the zero value and never valid for a persisted order.
	Unknown Status = iota

	// Pending orders wait for a dispatch to start its journey.
	Pending

	// InProgress orders have a dispatch on the road.
	InProgress

	// Completed orders were delivered and deducted from stock.
	Completed

	// Cancelled orders were withdrawn by an administrator.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// ParseStatus converts the wire representation back into a Status.
func ParseStatus(raw string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", raw))
}

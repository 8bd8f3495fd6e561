package dispatch

import (
	"fmt"

	"haulage/internal/pkg/errs"
)

// Status is the position of a dispatch in the yard workflow. The staged
// path runs assigned, in_transit, weigh_in, unload, weigh_out, completed;
// cancelled can be reached from any non-terminal status.
type Status int

const (
	Unknown Status = iota
	Assigned
	InTransit
	WeighIn
	Unload
	WeighOut
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Assigned:  "assigned",
		InTransit: "in_transit",
		WeighIn:   "weigh_in",
		Unload:    "unload",
		WeighOut:  "weigh_out",
		Completed: "completed",
		Cancelled: "cancelled",
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
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid dispatch status", s))
	}
	return nil
}

// IsTerminal reports whether no further workflow step is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsMidWorkflow reports whether a dispatch in this status keeps its truck on the road.
func (s Status) IsMidWorkflow() bool {
	return s >= InTransit && s <= WeighOut
}

// ParseStatus maps the wire name of a status back to its value. The name
// "unknown" is never accepted.
//
// Example:
//
//	status, err := dispatch.ParseStatus("weigh_out")
//	if err != nil {
//	    return err // ValueIsInvalid
//	}
//	fmt.Println(status.IsMidWorkflow()) // true
func ParseStatus(raw string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid dispatch status", raw))
}

package truck

import "haulage/internal/pkg/errs"

type Status int

const (
	Unknown Status = iota
	Idle
	InTransit
)

var statusNames = map[Status]string{
	Idle:      "idle",
	InTransit: "in_transit",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsOutOfRangeError("truck status", int(s), int(Idle), int(InTransit))
	}
	return nil
}

func ParseStatus(raw string) (Status, error) {
	for s, name := range statusNames {
		if name == raw {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("truck status " + raw)
}

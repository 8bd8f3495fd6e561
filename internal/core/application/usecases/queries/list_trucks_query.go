package queries

import (
	"errors"

	"haulage/internal/core/domain/model/truck"
	"haulage/internal/pkg/guard"
)

var ErrListTrucksQueryIsNotConstructed = errors.New("ListTrucksQuery must be created via NewListTrucksQuery constructor")

// ListTrucksQuery lists the fleet by plate. An empty status list matches
// every status; availableOnly keeps idle, unclaimed trucks.
type ListTrucksQuery struct {
	statuses      []truck.Status
	availableOnly bool

	guard guard.ConstructorGuard
}

func NewListTrucksQuery(statuses []truck.Status, availableOnly bool) (ListTrucksQuery, error) {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListTrucksQuery{}, err
		}
	}
	return ListTrucksQuery{
		statuses:      statuses,
		availableOnly: availableOnly,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q ListTrucksQuery) Validate() error {
	return q.guard.Validate(ErrListTrucksQueryIsNotConstructed)
}

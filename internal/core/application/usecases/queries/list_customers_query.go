package queries

import (
	"errors"
	"strings"

	"haulage/internal/pkg/guard"
)

var ErrListCustomersQueryIsNotConstructed = errors.New(
	"ListCustomersQuery must be created via NewListCustomersQuery constructor",
)

// ListCustomersQuery lists customers by name. A non-empty search matches
// name or contact case-insensitively.
type ListCustomersQuery struct {
	search string

	guard guard.ConstructorGuard
}

func NewListCustomersQuery(search string) ListCustomersQuery {
	return ListCustomersQuery{search: strings.TrimSpace(search), guard: guard.NewConstructorGuard()}
}

func (q ListCustomersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomersQueryIsNotConstructed)
}

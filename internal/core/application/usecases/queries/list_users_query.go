package queries

import (
	"errors"

	"haulage/internal/core/domain/model/user"
	"haulage/internal/pkg/guard"
)

var ErrListUsersQueryIsNotConstructed = errors.New("ListUsersQuery must be created via NewListUsersQuery constructor")

// ListUsersQuery lists accounts by username. With a role it serves as the
// operator directory.
type ListUsersQuery struct {
	role *user.Role

	guard guard.ConstructorGuard
}

func NewListUsersQuery(role *user.Role) (ListUsersQuery, error) {
	if role != nil {
		if err := role.Validate(); err != nil {
			return ListUsersQuery{}, err
		}
	}
	return ListUsersQuery{role: role, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

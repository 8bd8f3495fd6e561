package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand adds an entry to the user directory. Credentials are not
// kept here; tokens are issued for existing usernames.
type CreateUserCommand struct {
	actor    ports.Identity
	userID   kernel.UUID
	username string
	role     user.Role

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(
	actor ports.Identity,
	userID kernel.UUID,
	username string,
	role user.Role,
) (CreateUserCommand, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return CreateUserCommand{}, err
	}
	return CreateUserCommand{
		actor:    actor,
		userID:   userID,
		username: username,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) Actor() ports.Identity {
	return c.actor
}

func (c CreateUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateUserCommand) Username() string {
	return c.username
}

func (c CreateUserCommand) Role() user.Role {
	return c.role
}

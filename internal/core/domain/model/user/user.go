// Package user holds the accounts that act on dispatches. A user's role
// decides which capability the auth collaborator hands to the engine.
package user

import (
	"errors"
	"fmt"
	"strings"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleOperator:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

var (
	ErrUsernameIsRequired   = errs.NewValueIsRequiredError("username")
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
)

type User struct {
	id       kernel.UUID
	username string
	role     Role

	guard guard.ConstructorGuard
}

func NewUser(id kernel.UUID, username string, role Role) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(u.setID(id), u.setUsername(username), u.setRole(role)); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) IsOperator() bool {
	return u.role == RoleOperator
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameIsRequired
	}
	u.username = username
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

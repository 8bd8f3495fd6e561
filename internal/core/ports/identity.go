package ports

import (
	"strings"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/pkg/errs"
)

// Capability is what the auth collaborator says the caller may do.
type Capability string

const (
	CapabilityAdmin    Capability = "admin"
	CapabilityOperator Capability = "operator"
	CapabilityNone     Capability = "none"
)

// CapabilityOf maps a user role to its capability.
func CapabilityOf(role user.Role) Capability {
	switch role {
	case user.RoleAdmin:
		return CapabilityAdmin
	case user.RoleOperator:
		return CapabilityOperator
	default:
		return CapabilityNone
	}
}

// Identity is the acting caller carried into every command.
type Identity struct {
	UserID     kernel.UUID
	Capability Capability
}

// SystemIdentity acts for scheduled jobs and CLI commands.
func SystemIdentity() Identity {
	return Identity{Capability: CapabilityAdmin}
}

func (i Identity) IsAdmin() bool {
	return i.Capability == CapabilityAdmin
}

// IsOperator is true only for plain operators, not admins.
func (i Identity) IsOperator() bool {
	return i.Capability == CapabilityOperator
}

// ActorID returns the acting user, or nil for the system identity.
func (i Identity) ActorID() *kernel.UUID {
	if i.UserID.Validate() != nil {
		return nil
	}
	id := i.UserID
	return &id
}

// Require fails with errs.ErrPermissionDenied unless the identity holds one
// of the allowed capabilities.
func (i Identity) Require(operation string, allowed ...Capability) error {
	for _, c := range allowed {
		if i.Capability == c {
			return nil
		}
	}
	names := make([]string, 0, len(allowed))
	for _, c := range allowed {
		names = append(names, string(c))
	}
	return errs.NewPermissionDeniedError(operation, strings.Join(names, " or "))
}

// RequireOperator is the capability check of the staged workflow commands.
func (i Identity) RequireOperator(operation string) error {
	return i.Require(operation, CapabilityOperator, CapabilityAdmin)
}

func (i Identity) RequireAdmin(operation string) error {
	return i.Require(operation, CapabilityAdmin)
}

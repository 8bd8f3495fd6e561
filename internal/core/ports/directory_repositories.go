package ports

import (
	"context"

	"haulage/internal/core/domain/model/customer"
	"haulage/internal/core/domain/model/exceptionlog"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"
	"haulage/internal/core/domain/model/user"
)

type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error
	Update(ctx context.Context, aggregate *customer.Customer) error
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}

type UserRepository interface {
	// Add persists a new user. A duplicate username is reported as errs.ErrValueIsInvalid.
	Add(ctx context.Context, aggregate *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// MediaRepository only appends; media records are never changed.
type MediaRepository interface {
	Add(ctx context.Context, aggregate *media.Media) error
}

type ExceptionRepository interface {
	Add(ctx context.Context, aggregate *exceptionlog.Exception) error
	Update(ctx context.Context, aggregate *exceptionlog.Exception) error
	GetForUpdate(ctx context.Context, id kernel.UUID) (*exceptionlog.Exception, error)
}

package customerrepo

import (
	"context"

	"haulage/internal/adapters/out/postgres/pgutil"
	"haulage/internal/core/domain/model/customer"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository has no version column: customers are edited by
// administrators only and the last write wins.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker pgutil.AggregateTracker
}

func NewGormCustomerRepository(db *gorm.DB, tracker pgutil.AggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&dto).
		Select("name", "contact", "email", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.NotFound(err, "customer", id.String())
	}

	return toDomain(dto)
}

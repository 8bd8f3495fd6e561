package truckrepo

import (
	"context"

	"haulage/internal/adapters/out/postgres/pgutil"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/truck"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTruckRepository implements TruckRepository using GORM.
type GormTruckRepository struct {
	db      *gorm.DB
	tracker pgutil.AggregateTracker
}

func NewGormTruckRepository(db *gorm.DB, tracker pgutil.AggregateTracker) *GormTruckRepository {
	return &GormTruckRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new truck. A plate already registered is a validation error.
func (r *GormTruckRepository) Add(ctx context.Context, aggregate *truck.Truck) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.Duplicate(err, "plate")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTruckRepository) Update(ctx context.Context, aggregate *truck.Truck) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++
	if err := pgutil.UpdateVersioned(ctx, r.db, "truck", dto.ID, aggregate.Version(), &dto); err != nil {
		return pgutil.Duplicate(err, "plate")
	}
	aggregate.AdvanceVersion()

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTruckRepository) Get(ctx context.Context, id kernel.UUID) (*truck.Truck, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, r.db, "truck", id.String(), "id = ?", id.Bytes())
}

func (r *GormTruckRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*truck.Truck, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, pgutil.ForUpdate(r.db), "truck", id.String(), "id = ?", id.Bytes())
}

func (r *GormTruckRepository) GetByPlate(ctx context.Context, plate string) (*truck.Truck, error) {
	return r.first(ctx, r.db, "plate", plate, "plate = ?", plate)
}

// LockFirstAvailable locks the oldest idle, unclaimed truck. Rows locked by
// concurrent transactions are skipped, so two orders created at once never
// get the same truck and neither waits on the other.
func (r *GormTruckRepository) LockFirstAvailable(ctx context.Context) (*truck.Truck, error) {
	var dto TruckDTO
	err := pgutil.ForUpdateSkipLocked(r.db).
		WithContext(ctx).
		Where("status = ? AND claimed_by IS NULL", truck.Idle.String()).
		Order("created_at, id").
		Limit(1).
		Find(&dto).Error
	if err != nil {
		return nil, err
	}
	if dto.ID == uuid.Nil {
		return nil, pgutil.NotFound(gorm.ErrRecordNotFound, "truck", "first available")
	}
	return toDomain(dto)
}

func (r *GormTruckRepository) first(
	ctx context.Context,
	db *gorm.DB,
	param string,
	id any,
	query string,
	args ...any,
) (*truck.Truck, error) {
	var dto TruckDTO
	if err := db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		return nil, pgutil.NotFound(err, param, id)
	}
	return toDomain(dto)
}

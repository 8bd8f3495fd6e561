package dispatchrepo

import (
	"context"

	"haulage/internal/adapters/out/postgres/pgutil"
	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// Dependent tables removed together with a dispatch. They are named here
// rather than imported so the repositories stay independent of each other.
var dependentTables = []string{"dispatch_media", "exception_logs"}

type GormDispatchRepository struct {
	db      *gorm.DB
	tracker pgutil.AggregateTracker
}

func NewGormDispatchRepository(db *gorm.DB, tracker pgutil.AggregateTracker) *GormDispatchRepository {
	return &GormDispatchRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormDispatchRepository) Add(ctx context.Context, aggregate *dispatch.Dispatch) error {
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

// Update saves the dispatch if its version is still the one that was read.
func (r *GormDispatchRepository) Update(ctx context.Context, aggregate *dispatch.Dispatch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++
	if err := pgutil.UpdateVersioned(ctx, r.db, "dispatch", dto.ID, aggregate.Version(), &dto); err != nil {
		return err
	}
	aggregate.AdvanceVersion()

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDispatchRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormDispatchRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error) {
	return r.get(ctx, pgutil.ForUpdate(r.db), id)
}

// ListByOrderForUpdate locks the dispatches of an order oldest first.
func (r *GormDispatchRepository) ListByOrderForUpdate(ctx context.Context, orderID kernel.UUID) ([]*dispatch.Dispatch, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DispatchDTO
	err := pgutil.ForUpdate(r.db).
		WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	dispatches := make([]*dispatch.Dispatch, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		dispatches = append(dispatches, d)
	}
	return dispatches, nil
}

// Delete removes the dispatch and every media and exception record that
// points at it.
func (r *GormDispatchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	for _, table := range dependentTables {
		if err := db.Exec("DELETE FROM "+table+" WHERE dispatch_id = ?", id.Bytes()).Error; err != nil {
			return err
		}
	}
	return pgutil.DeleteByID(ctx, r.db, &DispatchDTO{}, "dispatch", id.Bytes())
}

func (r *GormDispatchRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*dispatch.Dispatch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DispatchDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.NotFound(err, "dispatch", id.String())
	}

	return toDomain(dto)
}

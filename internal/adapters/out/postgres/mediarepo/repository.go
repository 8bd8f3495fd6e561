package mediarepo

import (
	"context"

	"haulage/internal/adapters/out/postgres/pgutil"
	"haulage/internal/core/domain/model/media"

	"gorm.io/gorm"
)

// GormMediaRepository appends evidence records. There is no update path.
type GormMediaRepository struct {
	db      *gorm.DB
	tracker pgutil.AggregateTracker
}

func NewGormMediaRepository(db *gorm.DB, tracker pgutil.AggregateTracker) *GormMediaRepository {
	return &GormMediaRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormMediaRepository) Add(ctx context.Context, aggregate *media.Media) error {
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

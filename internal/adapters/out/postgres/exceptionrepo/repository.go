package exceptionrepo

import (
	"context"

	"haulage/internal/adapters/out/postgres/pgutil"
	"haulage/internal/core/domain/model/exceptionlog"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormExceptionRepository struct {
	db      *gorm.DB
	tracker pgutil.AggregateTracker
}

func NewGormExceptionRepository(db *gorm.DB, tracker pgutil.AggregateTracker) *GormExceptionRepository {
	return &GormExceptionRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormExceptionRepository) Add(ctx context.Context, aggregate *exceptionlog.Exception) error {
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

// Update writes the resolution columns. Description and type never change.
func (r *GormExceptionRepository) Update(ctx context.Context, aggregate *exceptionlog.Exception) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&dto).
		Select("resolved", "resolved_by", "resolved_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("exception", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormExceptionRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*exceptionlog.Exception, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ExceptionDTO
	if err := pgutil.ForUpdate(r.db).WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.NotFound(err, "exception", id.String())
	}

	return toDomain(dto)
}

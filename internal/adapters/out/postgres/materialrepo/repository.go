package materialrepo

import (
	"context"

	"haulage/internal/adapters/out/postgres/pgutil"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/material"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormMaterialRepository struct {
	db      *gorm.DB
	tracker pgutil.AggregateTracker
}

func NewGormMaterialRepository(db *gorm.DB, tracker pgutil.AggregateTracker) *GormMaterialRepository {
	return &GormMaterialRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormMaterialRepository) Add(ctx context.Context, aggregate *material.Material) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.Duplicate(err, "name")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormMaterialRepository) Update(ctx context.Context, aggregate *material.Material) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++
	if err := pgutil.UpdateVersioned(ctx, r.db, "material", dto.ID, aggregate.Version(), &dto); err != nil {
		return pgutil.Duplicate(err, "name")
	}
	aggregate.AdvanceVersion()

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormMaterialRepository) Get(ctx context.Context, id kernel.UUID) (*material.Material, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, r.db, "material", id.String(), "id = ?", id.Bytes())
}

func (r *GormMaterialRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*material.Material, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, pgutil.ForUpdate(r.db), "material", id.String(), "id = ?", id.Bytes())
}

// GetByName matches the name exactly, case included.
func (r *GormMaterialRepository) GetByName(ctx context.Context, name string) (*material.Material, error) {
	return r.first(ctx, r.db, "material", name, "name = ?", name)
}

// LockOrSeed inserts a zero-stock row for name unless one exists, then locks
// whatever row holds the name. ON CONFLICT DO NOTHING makes a concurrent
// seed of the same name wait on the unique index instead of failing; the
// loser then locks the winner's row.
func (r *GormMaterialRepository) LockOrSeed(ctx context.Context, name string) (*material.Material, bool, error) {
	seed, err := material.Seed(name)
	if err != nil {
		return nil, false, err
	}

	dto := fromDomain(seed)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return nil, false, result.Error
	}
	seeded := result.RowsAffected == 1

	m, err := r.first(ctx, pgutil.ForUpdate(r.db), "material", seed.Name(), "name = ?", seed.Name())
	if err != nil {
		return nil, false, err
	}
	if seeded {
		r.tracker.TrackAggregate(m.ID(), m)
	}
	return m, seeded, nil
}

// ListBelow returns materials with stock strictly below threshold, by name.
func (r *GormMaterialRepository) ListBelow(ctx context.Context, threshold decimal.Decimal) ([]*material.Material, error) {
	var dtos []MaterialDTO
	if err := r.db.WithContext(ctx).Where("stock < ?", threshold).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	materials := make([]*material.Material, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, nil
}

func (r *GormMaterialRepository) first(
	ctx context.Context,
	db *gorm.DB,
	param string,
	id any,
	query string,
	args ...any,
) (*material.Material, error) {
	var dto MaterialDTO
	if err := db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		return nil, pgutil.NotFound(err, param, id)
	}
	return toDomain(dto)
}

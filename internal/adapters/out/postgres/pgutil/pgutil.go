// Package pgutil holds the row-locking, compare-and-swap and error mapping
// shared by the GORM repositories.
package pgutil

import (
	"context"
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AggregateTracker is told about every aggregate a repository writes.
type AggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// ForUpdate adds FOR UPDATE to the next query.
func ForUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// ForUpdateSkipLocked adds FOR UPDATE SKIP LOCKED to the next query.
func ForUpdateSkipLocked(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
}

// NotFound maps gorm.ErrRecordNotFound to errs.ObjectNotFoundError.
func NotFound(err error, param string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(param, id)
	}
	return err
}

// Duplicate maps a unique key violation to errs.ValueIsInvalidError on param.
// The connection must be opened with gorm.Config.TranslateError.
func Duplicate(err error, param string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewValueIsInvalidErrorWithCause(param, errors.New("already in use"))
	}
	return err
}

// UpdateVersioned writes every column of dto except the key and created_at
// to the row with the given id, provided its version is still expected.
// dto must already carry expected+1 as its version. No matching row is a
// lost race: errs.VersionIsInvalidError.
func UpdateVersioned(ctx context.Context, db *gorm.DB, param string, id uuid.UUID, expected int64, dto any) error {
	result := db.WithContext(ctx).
		Model(dto).
		Where("id = ? AND version = ?", id, expected).
		Select("*").
		Omit("id", "created_at").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError(param, errors.New("row was changed or removed by another transaction"))
	}
	return nil
}

// DeleteByID removes one row and reports a missing one as not found.
func DeleteByID(ctx context.Context, db *gorm.DB, model any, param string, id uuid.UUID) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(param, id.String())
	}
	return nil
}

// Package exceptionrepo persists exception logs.
package exceptionrepo

import (
	"time"

	"haulage/internal/core/domain/model/exceptionlog"
	"haulage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ExceptionDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DispatchID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Description string     `gorm:"type:text;not null"`
	Type        string     `gorm:"type:varchar(64);not null"`
	Resolved    bool       `gorm:"not null;default:false;index"`
	ResolvedBy  *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt  *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (ExceptionDTO) TableName() string {
	return "exception_logs"
}

func fromDomain(e *exceptionlog.Exception) ExceptionDTO {
	return ExceptionDTO{
		ID:          e.ID().Bytes(),
		DispatchID:  e.DispatchID().Bytes(),
		Description: e.Description(),
		Type:        e.Type(),
		Resolved:    e.IsResolved(),
		ResolvedBy:  kernel.OptionalBytes(e.ResolvedBy()),
		ResolvedAt:  e.ResolvedAt(),
	}
}

func toDomain(dto ExceptionDTO) (*exceptionlog.Exception, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	dispatchID, err := kernel.UUIDFromBytes(dto.DispatchID[:])
	if err != nil {
		return nil, err
	}
	resolvedBy, err := kernel.OptionalUUIDFromBytes(dto.ResolvedBy)
	if err != nil {
		return nil, err
	}
	return exceptionlog.RestoreException(id, dispatchID, dto.Description, dto.Type, dto.Resolved, resolvedBy, dto.ResolvedAt)
}

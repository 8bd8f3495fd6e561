// Package materialrepo persists the inventory ledger.
package materialrepo

import (
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/material"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MaterialDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(128);not null;uniqueIndex"`
	Stock     decimal.Decimal `gorm:"type:numeric(14,3);not null;index"`
	Unit      string          `gorm:"type:varchar(16);not null"`
	Version   int64           `gorm:"not null;default:0"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (MaterialDTO) TableName() string {
	return "materials"
}

func fromDomain(m *material.Material) MaterialDTO {
	return MaterialDTO{
		ID:      m.ID().Bytes(),
		Name:    m.Name(),
		Stock:   m.Stock(),
		Unit:    m.Unit(),
		Version: m.Version(),
	}
}

func toDomain(dto MaterialDTO) (*material.Material, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return material.RestoreMaterial(id, dto.Name, dto.Stock, dto.Unit, dto.Version)
}

// Package truckrepo persists the fleet registry.
package truckrepo

import (
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/truck"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TruckDTO is the trucks row. ClaimedBy holds the dispatch that currently
// owns the truck; it is what auto-assignment locks against.
type TruckDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Plate      string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Capacity   decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	DriverName string          `gorm:"type:varchar(128);not null"`
	Status     string          `gorm:"type:varchar(16);not null;index:idx_trucks_available,priority:1"`
	ClaimedBy  *uuid.UUID      `gorm:"type:uuid;index:idx_trucks_available,priority:2"`
	Version    int64           `gorm:"not null;default:0"`
	CreatedAt  time.Time       `gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

func (TruckDTO) TableName() string {
	return "trucks"
}

func fromDomain(t *truck.Truck) TruckDTO {
	return TruckDTO{
		ID:         t.ID().Bytes(),
		Plate:      t.Plate(),
		Capacity:   t.Capacity(),
		DriverName: t.DriverName(),
		Status:     t.Status().String(),
		ClaimedBy:  kernel.OptionalBytes(t.ClaimedBy()),
		Version:    t.Version(),
	}
}

func toDomain(dto TruckDTO) (*truck.Truck, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	claimedBy, err := kernel.OptionalUUIDFromBytes(dto.ClaimedBy)
	if err != nil {
		return nil, err
	}

	status, err := truck.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return truck.RestoreTruck(id, dto.Plate, dto.Capacity, dto.DriverName, status, claimedBy, dto.Version)
}

// Package dispatchrepo persists dispatches, the rows every workflow
// transition locks first.
package dispatchrepo

import (
	"time"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DispatchDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TruckID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OperatorID *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"type:varchar(16);not null;index"`

	StartJourneyTime *time.Time
	DepartureTime    *time.Time
	WeighInTime      *time.Time
	GrossWeight      *decimal.Decimal `gorm:"type:numeric(14,3)"`
	WeighInNote      string           `gorm:"type:text;not null;default:''"`
	UnloadTime       *time.Time
	UnloadNote       string `gorm:"type:text;not null;default:''"`
	WeighOutTime     *time.Time
	TareWeight       *decimal.Decimal `gorm:"type:numeric(14,3)"`
	WeighOutNote     string           `gorm:"type:text;not null;default:''"`
	CompletionTime   *time.Time
	ArrivalTime      *time.Time

	Version   int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DispatchDTO) TableName() string {
	return "dispatches"
}

func fromDomain(d *dispatch.Dispatch) DispatchDTO {
	s := d.Snapshot()
	return DispatchDTO{
		ID:               s.ID.Bytes(),
		TruckID:          s.TruckID.Bytes(),
		OrderID:          s.OrderID.Bytes(),
		OperatorID:       kernel.OptionalBytes(s.OperatorID),
		Status:           s.Status.String(),
		StartJourneyTime: s.StartJourneyTime,
		DepartureTime:    s.DepartureTime,
		WeighInTime:      s.WeighInTime,
		GrossWeight:      s.GrossWeight,
		WeighInNote:      s.WeighInNote,
		UnloadTime:       s.UnloadTime,
		UnloadNote:       s.UnloadNote,
		WeighOutTime:     s.WeighOutTime,
		TareWeight:       s.TareWeight,
		WeighOutNote:     s.WeighOutNote,
		CompletionTime:   s.CompletionTime,
		ArrivalTime:      s.ArrivalTime,
		Version:          s.Version,
	}
}

func toDomain(dto DispatchDTO) (*dispatch.Dispatch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	truckID, err := kernel.UUIDFromBytes(dto.TruckID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	operatorID, err := kernel.OptionalUUIDFromBytes(dto.OperatorID)
	if err != nil {
		return nil, err
	}
	status, err := dispatch.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return dispatch.Restore(dispatch.Snapshot{
		ID:               id,
		TruckID:          truckID,
		OrderID:          orderID,
		OperatorID:       operatorID,
		Status:           status,
		StartJourneyTime: dto.StartJourneyTime,
		DepartureTime:    dto.DepartureTime,
		WeighInTime:      dto.WeighInTime,
		GrossWeight:      dto.GrossWeight,
		WeighInNote:      dto.WeighInNote,
		UnloadTime:       dto.UnloadTime,
		UnloadNote:       dto.UnloadNote,
		WeighOutTime:     dto.WeighOutTime,
		TareWeight:       dto.TareWeight,
		WeighOutNote:     dto.WeighOutNote,
		CompletionTime:   dto.CompletionTime,
		ArrivalTime:      dto.ArrivalTime,
		Version:          dto.Version,
	})
}

package queries

import (
	"context"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/truck"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListTrucksQueryHandler struct {
	db *gorm.DB
}

func NewListTrucksQueryHandler(db *gorm.DB) ListTrucksQueryHandler {
	return ListTrucksQueryHandler{db: db}
}

type truckRow struct {
	ID         uuid.UUID
	Plate      string
	Capacity   decimal.Decimal
	DriverName string
	Status     string
	ClaimedBy  *uuid.UUID
}

func (h ListTrucksQueryHandler) Handle(ctx context.Context, query ListTrucksQuery) ([]TruckView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := selectTrucks(h.db.WithContext(ctx))
	if len(query.statuses) > 0 {
		names := make([]string, 0, len(query.statuses))
		for _, s := range query.statuses {
			names = append(names, s.String())
		}
		tx = tx.Where("status = ANY(?)", pq.Array(names))
	}
	if query.availableOnly {
		tx = tx.Where("status = ? AND claimed_by IS NULL", truck.Idle.String())
	}

	var rows []truckRow
	if err := tx.Order("plate").Scan(&rows).Error; err != nil {
		return nil, err
	}

	trucks := make([]TruckView, 0, len(rows))
	for _, row := range rows {
		view, err := row.view()
		if err != nil {
			return nil, err
		}
		trucks = append(trucks, view)
	}
	return trucks, nil
}

func selectTrucks(db *gorm.DB) *gorm.DB {
	return db.Table("trucks").Select("id, plate, capacity, driver_name, status, claimed_by")
}

func (row truckRow) view() (TruckView, error) {
	id, err := toUUID(row.ID)
	if err != nil {
		return TruckView{}, err
	}
	claimedBy, err := kernel.OptionalUUIDFromBytes(row.ClaimedBy)
	if err != nil {
		return TruckView{}, err
	}
	return TruckView{
		ID:         id,
		Plate:      row.Plate,
		Capacity:   row.Capacity,
		DriverName: row.DriverName,
		Status:     row.Status,
		ClaimedBy:  claimedBy,
		Available:  row.Status == truck.Idle.String() && claimedBy == nil,
	}, nil
}

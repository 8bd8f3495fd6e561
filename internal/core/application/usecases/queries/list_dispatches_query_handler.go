package queries

import (
	"context"
	"time"

	"haulage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListDispatchesQueryHandler struct {
	db *gorm.DB
}

func NewListDispatchesQueryHandler(db *gorm.DB) ListDispatchesQueryHandler {
	return ListDispatchesQueryHandler{db: db}
}

func (h ListDispatchesQueryHandler) Handle(ctx context.Context, query ListDispatchesQuery) ([]DispatchView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.actor.RequireOperator("list dispatches"); err != nil {
		return nil, err
	}

	tx := selectDispatches(h.db.WithContext(ctx))
	if len(query.statuses) > 0 {
		names := make([]string, 0, len(query.statuses))
		for _, s := range query.statuses {
			names = append(names, s.String())
		}
		tx = tx.Where("d.status = ANY(?)", pq.Array(names))
	}
	if query.actor.IsOperator() {
		tx = tx.Where("d.operator_id = ?", query.actor.UserID.Bytes())
	} else if query.operatorID != nil {
		tx = tx.Where("d.operator_id = ?", query.operatorID.Bytes())
	}
	if query.orderID != nil {
		tx = tx.Where("d.order_id = ?", query.orderID.Bytes())
	}

	var rows []dispatchRow
	if err := tx.Order("d.created_at DESC, d.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	dispatches := make([]DispatchView, 0, len(rows))
	for _, row := range rows {
		view, err := row.view()
		if err != nil {
			return nil, err
		}
		dispatches = append(dispatches, view)
	}
	return dispatches, nil
}

type dispatchRow struct {
	ID               uuid.UUID
	TruckID          uuid.UUID
	TruckPlate       string
	OrderID          uuid.UUID
	MaterialType     string
	OperatorID       *uuid.UUID
	OperatorName     string
	Status           string
	StartJourneyTime *time.Time
	DepartureTime    *time.Time
	WeighInTime      *time.Time
	GrossWeight      *decimal.Decimal
	WeighInNote      string
	UnloadTime       *time.Time
	UnloadNote       string
	WeighOutTime     *time.Time
	TareWeight       *decimal.Decimal
	WeighOutNote     string
	CompletionTime   *time.Time
	ArrivalTime      *time.Time
	CreatedAt        time.Time
}

func selectDispatches(db *gorm.DB) *gorm.DB {
	return db.Table("dispatches d").
		Select(`d.id, d.truck_id, COALESCE(t.plate, '') AS truck_plate,
			d.order_id, COALESCE(o.material_type, '') AS material_type,
			d.operator_id, COALESCE(u.username, '') AS operator_name, d.status,
			d.start_journey_time, d.departure_time,
			d.weigh_in_time, d.gross_weight, d.weigh_in_note,
			d.unload_time, d.unload_note,
			d.weigh_out_time, d.tare_weight, d.weigh_out_note,
			d.completion_time, d.arrival_time, d.created_at`).
		Joins("LEFT JOIN trucks t ON t.id = d.truck_id").
		Joins("LEFT JOIN orders o ON o.id = d.order_id").
		Joins("LEFT JOIN users u ON u.id = d.operator_id")
}

func (row dispatchRow) view() (DispatchView, error) {
	id, err := toUUID(row.ID)
	if err != nil {
		return DispatchView{}, err
	}
	truckID, err := toUUID(row.TruckID)
	if err != nil {
		return DispatchView{}, err
	}
	orderID, err := toUUID(row.OrderID)
	if err != nil {
		return DispatchView{}, err
	}
	operatorID, err := kernel.OptionalUUIDFromBytes(row.OperatorID)
	if err != nil {
		return DispatchView{}, err
	}

	var net *decimal.Decimal
	if row.GrossWeight != nil && row.TareWeight != nil {
		n := row.GrossWeight.Sub(*row.TareWeight)
		net = &n
	}

	return DispatchView{
		ID:               id,
		TruckID:          truckID,
		TruckPlate:       row.TruckPlate,
		OrderID:          orderID,
		MaterialType:     row.MaterialType,
		OperatorID:       operatorID,
		OperatorName:     row.OperatorName,
		Status:           row.Status,
		StartJourneyTime: row.StartJourneyTime,
		DepartureTime:    row.DepartureTime,
		WeighInTime:      row.WeighInTime,
		GrossWeight:      row.GrossWeight,
		WeighInNote:      row.WeighInNote,
		UnloadTime:       row.UnloadTime,
		UnloadNote:       row.UnloadNote,
		WeighOutTime:     row.WeighOutTime,
		TareWeight:       row.TareWeight,
		WeighOutNote:     row.WeighOutNote,
		CompletionTime:   row.CompletionTime,
		ArrivalTime:      row.ArrivalTime,
		NetWeight:        net,
		CreatedAt:        row.CreatedAt,
	}, nil
}

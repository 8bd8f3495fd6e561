package queries

import (
	"context"

	"haulage/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetTruckQueryHandler struct {
	db *gorm.DB
}

func NewGetTruckQueryHandler(db *gorm.DB) GetTruckQueryHandler {
	return GetTruckQueryHandler{db: db}
}

func (h GetTruckQueryHandler) Handle(ctx context.Context, query GetTruckQuery) (TruckView, error) {
	if err := query.Validate(); err != nil {
		return TruckView{}, err
	}

	tx := selectTrucks(h.db.WithContext(ctx))
	var key string
	if query.truckID != nil {
		tx = tx.Where("id = ?", query.truckID.Bytes())
		key = query.truckID.String()
	} else {
		tx = tx.Where("plate = ?", query.plate)
		key = query.plate
	}

	var rows []truckRow
	if err := tx.Limit(1).Scan(&rows).Error; err != nil {
		return TruckView{}, err
	}
	if len(rows) == 0 {
		return TruckView{}, errs.NewObjectNotFoundError("truck", key)
	}
	return rows[0].view()
}

package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListMaterialsQueryHandler struct {
	db *gorm.DB
}

func NewListMaterialsQueryHandler(db *gorm.DB) ListMaterialsQueryHandler {
	return ListMaterialsQueryHandler{db: db}
}

func (h ListMaterialsQueryHandler) Handle(ctx context.Context, query ListMaterialsQuery) ([]MaterialView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("materials").Select("id, name, stock, unit")
	if query.lowStockOnly {
		tx = tx.Where("stock < ?", query.threshold)
	}

	var rows []struct {
		ID    uuid.UUID
		Name  string
		Stock decimal.Decimal
		Unit  string
	}
	if err := tx.Order("name").Scan(&rows).Error; err != nil {
		return nil, err
	}

	materials := make([]MaterialView, 0, len(rows))
	for _, row := range rows {
		id, err := toUUID(row.ID)
		if err != nil {
			return nil, err
		}
		materials = append(materials, MaterialView{
			ID:       id,
			Name:     row.Name,
			Stock:    row.Stock,
			Unit:     row.Unit,
			LowStock: row.Stock.LessThan(query.threshold),
		})
	}
	return materials, nil
}

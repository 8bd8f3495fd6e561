package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

type orderRow struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	MaterialType string
	Quantity     decimal.Decimal
	Status       string
	CreatedAt    time.Time
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := selectOrders(h.db.WithContext(ctx))
	if query.status != nil {
		tx = tx.Where("o.status = ?", query.status.String())
	}
	if query.customerID != nil {
		tx = tx.Where("o.customer_id = ?", query.customerID.Bytes())
	}

	var rows []orderRow
	if err := tx.Order("o.created_at DESC, o.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, err := row.view()
		if err != nil {
			return nil, err
		}
		orders = append(orders, view)
	}
	return orders, nil
}

func selectOrders(db *gorm.DB) *gorm.DB {
	return db.Table("orders o").
		Select("o.id, o.customer_id, COALESCE(c.name, '') AS customer_name, o.material_type, o.quantity, o.status, o.created_at").
		Joins("LEFT JOIN customers c ON c.id = o.customer_id")
}

func (row orderRow) view() (OrderView, error) {
	id, err := toUUID(row.ID)
	if err != nil {
		return OrderView{}, err
	}
	customerID, err := toUUID(row.CustomerID)
	if err != nil {
		return OrderView{}, err
	}
	return OrderView{
		ID:           id,
		CustomerID:   customerID,
		CustomerName: row.CustomerName,
		MaterialType: row.MaterialType,
		Quantity:     row.Quantity,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
	}, nil
}

package queries

import (
	"context"
	"time"

	"haulage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListExceptionsQueryHandler struct {
	db *gorm.DB
}

func NewListExceptionsQueryHandler(db *gorm.DB) ListExceptionsQueryHandler {
	return ListExceptionsQueryHandler{db: db}
}

func (h ListExceptionsQueryHandler) Handle(ctx context.Context, query ListExceptionsQuery) ([]ExceptionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.actor.RequireOperator("list exceptions"); err != nil {
		return nil, err
	}
	return listExceptions(h.db.WithContext(ctx), query.dispatchID, query.resolved)
}

func listExceptions(db *gorm.DB, dispatchID *kernel.UUID, resolved *bool) ([]ExceptionView, error) {
	tx := db.Table("exception_logs").
		Select("id, dispatch_id, description, type, resolved, resolved_by, resolved_at, created_at")
	if dispatchID != nil {
		tx = tx.Where("dispatch_id = ?", dispatchID.Bytes())
	}
	if resolved != nil {
		tx = tx.Where("resolved = ?", *resolved)
	}

	var rows []struct {
		ID          uuid.UUID
		DispatchID  uuid.UUID
		Description string
		Type        string
		Resolved    bool
		ResolvedBy  *uuid.UUID
		ResolvedAt  *time.Time
		CreatedAt   time.Time
	}
	if err := tx.Order("created_at DESC, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]ExceptionView, 0, len(rows))
	for _, row := range rows {
		id, err := toUUID(row.ID)
		if err != nil {
			return nil, err
		}
		did, err := toUUID(row.DispatchID)
		if err != nil {
			return nil, err
		}
		resolver, err := kernel.OptionalUUIDFromBytes(row.ResolvedBy)
		if err != nil {
			return nil, err
		}
		views = append(views, ExceptionView{
			ID:          id,
			DispatchID:  did,
			Description: row.Description,
			Type:        row.Type,
			Resolved:    row.Resolved,
			ResolvedBy:  resolver,
			ResolvedAt:  row.ResolvedAt,
			CreatedAt:   row.CreatedAt,
		})
	}
	return views, nil
}

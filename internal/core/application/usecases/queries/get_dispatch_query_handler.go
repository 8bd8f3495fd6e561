package queries

import (
	"context"

	"haulage/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetDispatchQueryHandler struct {
	db *gorm.DB
}

func NewGetDispatchQueryHandler(db *gorm.DB) GetDispatchQueryHandler {
	return GetDispatchQueryHandler{db: db}
}

// Handle reports a dispatch assigned to someone else as not found when the
// caller is an operator.
func (h GetDispatchQueryHandler) Handle(ctx context.Context, query GetDispatchQuery) (DispatchDetails, error) {
	if err := query.Validate(); err != nil {
		return DispatchDetails{}, err
	}
	if err := query.actor.RequireOperator("view dispatch"); err != nil {
		return DispatchDetails{}, err
	}

	db := h.db.WithContext(ctx)
	tx := selectDispatches(db).Where("d.id = ?", query.dispatchID.Bytes())
	if query.actor.IsOperator() {
		tx = tx.Where("d.operator_id = ?", query.actor.UserID.Bytes())
	}

	var rows []dispatchRow
	if err := tx.Limit(1).Scan(&rows).Error; err != nil {
		return DispatchDetails{}, err
	}
	if len(rows) == 0 {
		return DispatchDetails{}, errs.NewObjectNotFoundError("dispatch", query.dispatchID.String())
	}

	view, err := rows[0].view()
	if err != nil {
		return DispatchDetails{}, err
	}

	media, err := listMedia(db, &query.dispatchID, nil)
	if err != nil {
		return DispatchDetails{}, err
	}
	exceptions, err := listExceptions(db, &query.dispatchID, nil)
	if err != nil {
		return DispatchDetails{}, err
	}

	return DispatchDetails{DispatchView: view, Media: media, Exceptions: exceptions}, nil
}

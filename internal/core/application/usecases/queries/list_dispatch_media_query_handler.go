package queries

import (
	"context"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ListDispatchMediaQueryHandler struct {
	db *gorm.DB
}

func NewListDispatchMediaQueryHandler(db *gorm.DB) ListDispatchMediaQueryHandler {
	return ListDispatchMediaQueryHandler{db: db}
}

func (h ListDispatchMediaQueryHandler) Handle(ctx context.Context, query ListDispatchMediaQuery) ([]MediaView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.actor.RequireOperator("list dispatch media"); err != nil {
		return nil, err
	}
	return listMedia(h.db.WithContext(ctx), query.dispatchID, query.stage)
}

type mediaRow struct {
	ID          uuid.UUID
	DispatchID  uuid.UUID
	Stage       string
	Reference   string
	UploaderID  *uuid.UUID
	Description string
	Metadata    datatypes.JSONMap
	CreatedAt   time.Time
}

func listMedia(db *gorm.DB, dispatchID *kernel.UUID, stage *media.Stage) ([]MediaView, error) {
	tx := db.Table("dispatch_media").
		Select("id, dispatch_id, stage, reference, uploader_id, description, metadata, created_at")
	if dispatchID != nil {
		tx = tx.Where("dispatch_id = ?", dispatchID.Bytes())
	}
	if stage != nil {
		tx = tx.Where("stage = ?", string(*stage))
	}

	var rows []mediaRow
	if err := tx.Order("created_at, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]MediaView, 0, len(rows))
	for _, row := range rows {
		id, err := toUUID(row.ID)
		if err != nil {
			return nil, err
		}
		did, err := toUUID(row.DispatchID)
		if err != nil {
			return nil, err
		}
		uploader, err := kernel.OptionalUUIDFromBytes(row.UploaderID)
		if err != nil {
			return nil, err
		}
		view := MediaView{
			ID:          id,
			DispatchID:  did,
			Stage:       row.Stage,
			Reference:   row.Reference,
			UploaderID:  uploader,
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		}
		view.FileName, _ = row.Metadata["file_name"].(string)
		view.ContentType, _ = row.Metadata["content_type"].(string)
		// jsonb numbers come back as float64
		if size, ok := row.Metadata["size"].(float64); ok {
			view.Size = int64(size)
		}
		views = append(views, view)
	}
	return views, nil
}

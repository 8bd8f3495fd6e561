// Package mediarepo persists evidence records. Image bytes live in the
// evidence store; the row keeps its reference and descriptive metadata.
package mediarepo

import (
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MediaDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	DispatchID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_media_dispatch_stage,priority:1"`
	Stage       string            `gorm:"type:varchar(16);not null;index:idx_media_dispatch_stage,priority:2"`
	Reference   string            `gorm:"type:text;not null"`
	UploaderID  *uuid.UUID        `gorm:"type:uuid"`
	Description string            `gorm:"type:text;not null;default:''"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt   time.Time         `gorm:"not null;index"`
}

func (MediaDTO) TableName() string {
	return "dispatch_media"
}

func fromDomain(m *media.Media) MediaDTO {
	meta := m.Metadata()
	return MediaDTO{
		ID:          m.ID().Bytes(),
		DispatchID:  m.DispatchID().Bytes(),
		Stage:       string(m.Stage()),
		Reference:   m.Reference(),
		UploaderID:  kernel.OptionalBytes(m.UploaderID()),
		Description: m.Description(),
		Metadata: datatypes.JSONMap{
			"file_name":    meta.FileName,
			"content_type": meta.ContentType,
			"size":         meta.Size,
		},
		CreatedAt: m.CreatedAt(),
	}
}

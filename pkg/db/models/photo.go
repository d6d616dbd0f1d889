package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	"github.com/karimelbaz/photodesk-backend/pkg/types"
)

// MetadataClonedFrom is the metadata key marking a cloned photo row and
// pointing back at the original photo id.
const MetadataClonedFrom = "cloned_from"

// Photo is a single uploaded image. Clones share the original's
// file_path and carry metadata.cloned_from; print status and sync
// status advance independently.
type Photo struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	FilePath      string            `gorm:"column:file_path;not null"`
	ThumbnailPath *string           `gorm:"column:thumbnail_path"`
	BarcodePrefix string            `gorm:"column:barcode_prefix;not null;index"`
	UploadedBy    uuid.UUID         `gorm:"column:uploaded_by;type:uuid;not null"`
	BranchID      uuid.UUID         `gorm:"column:branch_id;type:uuid;not null"`
	UserID        *uuid.UUID        `gorm:"column:user_id;type:uuid;index"`
	Status        enums.PhotoStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	SyncStatus    enums.SyncStatus  `gorm:"column:sync_status;type:text;not null;default:'pending'"`
	Metadata      types.JSONMap     `gorm:"column:metadata;type:jsonb;serializer:json"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// IsClone reports whether the row was produced by the selection workflow.
func (p Photo) IsClone() bool {
	if p.Metadata == nil {
		return false
	}
	_, ok := p.Metadata[MetadataClonedFrom]
	return ok
}

// ClonedFrom returns the origin photo id for clone rows.
func (p Photo) ClonedFrom() (uuid.UUID, bool) {
	if p.Metadata == nil {
		return uuid.Nil, false
	}
	raw, ok := p.Metadata[MetadataClonedFrom].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

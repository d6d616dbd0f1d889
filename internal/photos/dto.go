package photos

import (
	"time"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

// PhotoDTO exposes photo rows in API responses. Paths are object keys
// under the public media base URL.
type PhotoDTO struct {
	ID            uuid.UUID         `json:"id"`
	FilePath      string            `json:"file_path"`
	ThumbnailPath *string           `json:"thumbnail_path,omitempty"`
	BarcodePrefix string            `json:"barcode_prefix"`
	UploadedBy    uuid.UUID         `json:"uploaded_by"`
	BranchID      uuid.UUID         `json:"branch_id"`
	UserID        *uuid.UUID        `json:"user_id,omitempty"`
	Status        enums.PhotoStatus `json:"status"`
	SyncStatus    enums.SyncStatus  `json:"sync_status"`
	ClonedFrom    *uuid.UUID        `json:"cloned_from,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// FromModel maps a persisted photo into a DTO.
func FromModel(m *models.Photo) *PhotoDTO {
	if m == nil {
		return nil
	}
	dto := &PhotoDTO{
		ID:            m.ID,
		FilePath:      m.FilePath,
		ThumbnailPath: m.ThumbnailPath,
		BarcodePrefix: m.BarcodePrefix,
		UploadedBy:    m.UploadedBy,
		BranchID:      m.BranchID,
		UserID:        m.UserID,
		Status:        m.Status,
		SyncStatus:    m.SyncStatus,
		CreatedAt:     m.CreatedAt,
	}
	if origin, ok := m.ClonedFrom(); ok {
		dto.ClonedFrom = &origin
	}
	return dto
}

// FromModels maps a slice of photo rows.
func FromModels(ms []models.Photo) []PhotoDTO {
	out := make([]PhotoDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GeneratedDocument points at a rendered artifact produced by the external
// templating service. DataUsed snapshots the org/cap-table/people payload
// the renderer consumed, for later reproduction.
type GeneratedDocument struct {
	DocumentID uuid.UUID      `gorm:"column:document_id;type:uuid;primaryKey" json:"document_id"`
	OrgID      uuid.UUID      `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	TemplateID uuid.UUID      `gorm:"column:template_id;type:uuid;not null" json:"template_id"`
	FileKey    string         `gorm:"column:file_key;not null" json:"file_key"`
	DataUsed   datatypes.JSON `gorm:"column:data_used;type:jsonb;not null" json:"data_used"`
	CreatedBy  uuid.UUID      `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (GeneratedDocument) TableName() string {
	return "GeneratedDocuments"
}

func (gd *GeneratedDocument) BeforeCreate(tx *gorm.DB) error {
	if gd.DocumentID == uuid.Nil {
		gd.DocumentID = uuid.New()
	}
	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Template is a pointer record for an uploaded document template. The file
// bytes live in object storage under FileKey; uploads go through a signed
// URL, never through this service.
type Template struct {
	TemplateID uuid.UUID      `gorm:"column:template_id;type:uuid;primaryKey" json:"template_id"`
	Name       string         `gorm:"column:name;not null" json:"name"`
	Category   *string        `gorm:"column:category" json:"category"`
	FileKey    string         `gorm:"column:file_key;not null" json:"file_key"`
	UploadedBy uuid.UUID      `gorm:"column:uploaded_by;type:uuid;not null" json:"uploaded_by"`
	CreatedAt  time.Time      `json:"createdAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Template) TableName() string {
	return "Templates"
}

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.TemplateID == uuid.Nil {
		t.TemplateID = uuid.New()
	}
	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of a state-changing action. OrgID is
// nil for system-level actions. No update or delete path exists.
type AuditLog struct {
	EntryID   uuid.UUID      `gorm:"column:entry_id;type:uuid;primaryKey" json:"entry_id"`
	OrgID     *uuid.UUID     `gorm:"column:org_id;type:uuid;index" json:"org_id"`
	ActorID   uuid.UUID      `gorm:"column:actor_id;type:uuid;not null" json:"actor_id"`
	Action    string         `gorm:"column:action;type:varchar(30);not null" json:"action"`
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb;not null" json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "AuditLogs"
}

func (al *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if al.EntryID == uuid.Nil {
		al.EntryID = uuid.New()
	}
	return nil
}

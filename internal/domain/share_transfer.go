package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShareTransfer records movement of previously issued shares between
// holders. A nil FromPersonID marks a treasury movement (an original
// issuance later recorded as a transfer).
type ShareTransfer struct {
	TransferID    uuid.UUID        `gorm:"column:transfer_id;type:uuid;primaryKey" json:"transfer_id"`
	OrgID         uuid.UUID        `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	FromPersonID  *uuid.UUID       `gorm:"column:from_person_id;type:uuid" json:"from_person_id"`
	ToPersonID    uuid.UUID        `gorm:"column:to_person_id;type:uuid;not null" json:"to_person_id"`
	ShareClassID  uuid.UUID        `gorm:"column:share_class_id;type:uuid;not null;index" json:"share_class_id"`
	Quantity      int64            `gorm:"column:quantity;not null" json:"quantity"`
	TransferDate  time.Time        `gorm:"column:transfer_date;not null" json:"transfer_date"`
	Consideration *decimal.Decimal `gorm:"column:consideration;type:numeric(20,4)" json:"consideration"`
	CertFrom      *string          `gorm:"column:cert_from" json:"cert_from"`
	CertTo        *string          `gorm:"column:cert_to" json:"cert_to"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func (ShareTransfer) TableName() string {
	return "ShareTransfers"
}

func (st *ShareTransfer) BeforeCreate(tx *gorm.DB) error {
	if st.TransferID == uuid.Nil {
		st.TransferID = uuid.New()
	}
	return nil
}

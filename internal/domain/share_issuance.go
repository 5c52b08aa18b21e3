package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Shareholder type discriminator for issuances. Exactly one of
// ShareholderID / EntityShareholderID is set, matching the type.
const (
	ShareholderPerson = "person"
	ShareholderEntity = "entity"
)

// ShareIssuance records shares of one class issued to a holder. CertNumber
// is the paper-trail identifier, unique within (org, class) only.
type ShareIssuance struct {
	IssuanceID          uuid.UUID        `gorm:"column:issuance_id;type:uuid;primaryKey" json:"issuance_id"`
	OrgID               uuid.UUID        `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	ShareholderType     string           `gorm:"column:shareholder_type;type:varchar(10);not null" json:"shareholder_type"`
	ShareholderID       *uuid.UUID       `gorm:"column:shareholder_id;type:uuid" json:"shareholder_id"`
	EntityShareholderID *uuid.UUID       `gorm:"column:entity_shareholder_id;type:uuid" json:"entity_shareholder_id"`
	ShareClassID        uuid.UUID        `gorm:"column:share_class_id;type:uuid;not null;index" json:"share_class_id"`
	Quantity            int64            `gorm:"column:quantity;not null" json:"quantity"`
	CertNumber          string           `gorm:"column:cert_number;not null" json:"cert_number"`
	IssuePrice          *decimal.Decimal `gorm:"column:issue_price;type:numeric(20,4)" json:"issue_price"`
	IssueDate           time.Time        `gorm:"column:issue_date;not null" json:"issue_date"`
	CreatedAt           time.Time        `json:"createdAt"`
}

func (ShareIssuance) TableName() string {
	return "ShareIssuances"
}

func (si *ShareIssuance) BeforeCreate(tx *gorm.DB) error {
	if si.IssuanceID == uuid.Nil {
		si.IssuanceID = uuid.New()
	}
	return nil
}

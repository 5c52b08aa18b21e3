package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Org is a legal corporate entity and the root aggregate for roles, share
// classes, issuances, transfers, documents and audit entries. It carries up
// to four address slots, each pointing at an immutable Address row.
type Org struct {
	OrgID              uuid.UUID      `gorm:"column:org_id;type:uuid;primaryKey" json:"org_id"`
	Name               string         `gorm:"column:name;not null" json:"name"`
	Jurisdiction       string         `gorm:"column:jurisdiction;not null" json:"jurisdiction"`
	RegistrationNumber *string        `gorm:"column:registration_number" json:"registration_number"`
	FormationDate      *time.Time     `gorm:"column:formation_date" json:"formation_date"`

	RegisteredOfficeAddressID *uuid.UUID `gorm:"column:registered_office_address_id;type:uuid" json:"registered_office_address_id"`
	RecordsOfficeAddressID    *uuid.UUID `gorm:"column:records_office_address_id;type:uuid" json:"records_office_address_id"`
	MailingAddressID          *uuid.UUID `gorm:"column:mailing_address_id;type:uuid" json:"mailing_address_id"`
	RepresentativeAddressID   *uuid.UUID `gorm:"column:representative_address_id;type:uuid" json:"representative_address_id"`

	RepresentativeName  *string `gorm:"column:representative_name" json:"representative_name"`
	RepresentativeEmail *string `gorm:"column:representative_email" json:"representative_email"`
	RepresentativePhone *string `gorm:"column:representative_phone" json:"representative_phone"`

	CreatedBy uuid.UUID      `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Org) TableName() string {
	return "Orgs"
}

func (o *Org) BeforeCreate(tx *gorm.DB) error {
	if o.OrgID == uuid.Nil {
		o.OrgID = uuid.New()
	}
	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleAssignment binds a Person (or, for corporate shareholders, another
// Org via EntityShareholderID) to an Org with a role and temporal bounds.
// A person may hold several roles in the same org as independent rows.
type RoleAssignment struct {
	RoleID              uuid.UUID  `gorm:"column:role_id;type:uuid;primaryKey" json:"role_id"`
	OrgID               uuid.UUID  `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	PersonID            *uuid.UUID `gorm:"column:person_id;type:uuid;index" json:"person_id"`
	EntityShareholderID *uuid.UUID `gorm:"column:entity_shareholder_id;type:uuid" json:"entity_shareholder_id"`
	Role                string     `gorm:"column:role;type:varchar(20);not null" json:"role"`
	Title               *string    `gorm:"column:title" json:"title"`
	StartDate           time.Time  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate             *time.Time `gorm:"column:end_date" json:"end_date"`
	CreatedAt           time.Time  `json:"createdAt"`
}

func (RoleAssignment) TableName() string {
	return "RoleAssignments"
}

func (r *RoleAssignment) BeforeCreate(tx *gorm.DB) error {
	if r.RoleID == uuid.Nil {
		r.RoleID = uuid.New()
	}
	return nil
}

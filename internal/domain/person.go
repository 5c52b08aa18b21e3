package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person is an individual who may hold roles across any number of
// organizations. People are shared reference data: deleting an org removes
// its role assignments, never the person.
type Person struct {
	PersonID    uuid.UUID      `gorm:"column:person_id;type:uuid;primaryKey" json:"person_id"`
	FirstName   string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName    string         `gorm:"column:last_name;not null" json:"last_name"`
	Email       *string        `gorm:"column:email" json:"email"`
	DateOfBirth *time.Time     `gorm:"column:date_of_birth" json:"date_of_birth"`
	AddressID   *uuid.UUID     `gorm:"column:address_id;type:uuid" json:"address_id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Person) TableName() string {
	return "People"
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.PersonID == uuid.Nil {
		p.PersonID = uuid.New()
	}
	return nil
}

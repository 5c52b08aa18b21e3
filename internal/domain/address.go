package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is an immutable postal address. Updates never touch an existing
// row; callers create a new Address and repoint the owning record's FK.
type Address struct {
	AddressID  uuid.UUID `gorm:"column:address_id;type:uuid;primaryKey" json:"address_id"`
	Line1      string    `gorm:"column:line1;not null" json:"line1"`
	Line2      *string   `gorm:"column:line2" json:"line2"`
	City       string    `gorm:"column:city;not null" json:"city"`
	Region     string    `gorm:"column:region;not null" json:"region"`
	Country    string    `gorm:"column:country;not null" json:"country"`
	PostalCode string    `gorm:"column:postal_code;not null" json:"postal_code"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Address) TableName() string {
	return "Addresses"
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.AddressID == uuid.Nil {
		a.AddressID = uuid.New()
	}
	return nil
}

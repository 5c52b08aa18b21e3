package addresses

import (
	"errors"

	"minutebook-backend/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrLine1Required      = errors.New("Address line1 is required")
	ErrCityRequired       = errors.New("Address city is required")
	ErrRegionRequired     = errors.New("Address region is required")
	ErrCountryRequired    = errors.New("Address country is required")
	ErrPostalCodeRequired = errors.New("Address postal code is required")
)

// Input is an embedded address payload. Addresses are immutable: every
// Input present on a create or update materializes a fresh row, and the
// owning record's FK is repointed.
type Input struct {
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2"`
	City       string  `json:"city"`
	Region     string  `json:"region"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postal_code"`
}

func (in *Input) Validate() error {
	switch {
	case in.Line1 == "":
		return ErrLine1Required
	case in.City == "":
		return ErrCityRequired
	case in.Region == "":
		return ErrRegionRequired
	case in.Country == "":
		return ErrCountryRequired
	case in.PostalCode == "":
		return ErrPostalCodeRequired
	}
	return nil
}

// Create persists a new Address row on the caller's transaction and
// returns it. Never updates an existing row.
func Create(tx *gorm.DB, in *Input) (*domain.Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	addr := &domain.Address{
		Line1:      in.Line1,
		Line2:      in.Line2,
		City:       in.City,
		Region:     in.Region,
		Country:    in.Country,
		PostalCode: in.PostalCode,
	}
	if err := tx.Create(addr).Error; err != nil {
		return nil, err
	}
	return addr, nil
}

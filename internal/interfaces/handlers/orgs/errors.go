package orgs

import (
	"minutebook-backend/internal/application/addresses"
)

func isAddressError(err error) bool {
	switch err {
	case addresses.ErrLine1Required,
		addresses.ErrCityRequired,
		addresses.ErrRegionRequired,
		addresses.ErrCountryRequired,
		addresses.ErrPostalCodeRequired:
		return true
	}
	return false
}

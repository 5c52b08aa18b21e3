package user

import "errors"

var (
	ErrFullnameRequired = errors.New("Full name is required and must be a non-empty string")
	ErrInvalidFullname  = errors.New("Full name contains invalid characters (only letters, spaces, hyphens, and apostrophes allowed)")
	ErrInvalidEmail     = errors.New("Invalid email format")
	ErrInvalidPassword  = errors.New("Invalid password format")
	ErrEmailRegistered  = errors.New("Email already registered")
	ErrUserNotFound     = errors.New("User not found")
)

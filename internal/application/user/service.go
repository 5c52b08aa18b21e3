package user

import (
	"context"
	"strings"

	"minutebook-backend/internal/domain"
	"minutebook-backend/internal/pkg/constants"
	"minutebook-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service holds DB for user account operations.
type Service struct {
	DB *gorm.DB
}

// CreateUserInput is the registration payload.
type CreateUserInput struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser registers an account. The caller sanitizes password_hash out
// of the response (the model's json tag already hides it).
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	fullname := strings.TrimSpace(in.Fullname)
	if fullname == "" {
		return nil, ErrFullnameRequired
	}
	if !validation.IsValidName(fullname) {
		return nil, ErrInvalidFullname
	}
	if in.Email == "" || !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if in.Password == "" || !validation.IsValidPassword(in.Password) {
		return nil, ErrInvalidPassword
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Fullname:     fullname,
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.Member,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser returns an account by id.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

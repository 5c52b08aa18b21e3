package auth

import (
	"testing"

	"minutebook-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	require.NoError(t, err)
	u := &domain.User{Fullname: "Ada Lovelace", Email: email, PasswordHash: string(hash), Role: "member"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestLoginUser(t *testing.T) {
	db := setupAuthDB(t)
	seeded := seedUser(t, db, "ada@example.com", "passw0rd!")

	u, err := LoginUser(db, LoginInput{Email: "ada@example.com", Password: "passw0rd!"})
	require.NoError(t, err)
	assert.Equal(t, seeded.UserID, u.UserID)

	_, err = LoginUser(db, LoginInput{Email: "ada@example.com", Password: "wrong-pass1!"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = LoginUser(db, LoginInput{Email: "nobody@example.com", Password: "passw0rd!"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = LoginUser(db, LoginInput{Email: "", Password: ""})
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)
}

func TestVerifyUser(t *testing.T) {
	id := uuid.NewString()
	shape, err := VerifyUser(map[string]interface{}{
		"user_id": id, "fullname": "Ada Lovelace", "email": "ada@example.com", "role": "member",
	})
	require.NoError(t, err)
	assert.Equal(t, id, shape.UserID)
	assert.Equal(t, "member", shape.Role)

	_, err = VerifyUser(nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = VerifyUser(map[string]interface{}{"fullname": "No ID"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

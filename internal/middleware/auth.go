package middleware

import (
	"errors"

	"minutebook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "user"

// ErrNoActor is returned by ActorID when no authenticated user is present.
var ErrNoActor = errors.New("no authenticated user in session")

// RequireAuth ensures a user is in the session. Returns 401 with standard
// error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// ActorID resolves the authenticated user's id from the session. Every
// mutating service call takes this id explicitly; there is no ambient
// actor identity below the handler layer.
func ActorID(c *fiber.Ctx) (uuid.UUID, error) {
	m, ok := GetUser(c).(map[string]interface{})
	if !ok {
		return uuid.Nil, ErrNoActor
	}
	idStr, _ := m["user_id"].(string)
	if idStr == "" {
		return uuid.Nil, ErrNoActor
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ErrNoActor
	}
	return id, nil
}

package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// User info set in context by the auth middleware.
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserRole(c *fiber.Ctx) string {
	role := c.Locals("user_role")
	if role == nil {
		return ""
	}
	return role.(string)
}

// currentUserID parses the authenticated user's id back into a UUID.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(getUserID(c))
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// queryUUID reads an optional UUID query parameter. Empty or malformed
// values mean "no filter".
func queryUUID(c *fiber.Ctx, key string) *uuid.UUID {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// queryDate reads an optional date query parameter, accepting either a
// plain date or a full RFC3339 timestamp.
func queryDate(c *fiber.Ctx, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}

// Multipart forms arrive as strings; blanks fall back to zero.
func formFloat(c *fiber.Ctx, key string) float64 {
	v, err := strconv.ParseFloat(c.FormValue(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func formInt(c *fiber.Ctx, key string) int {
	v, err := strconv.Atoi(c.FormValue(key))
	if err != nil {
		return 0
	}
	return v
}

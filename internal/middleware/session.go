package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	// SessionHeader carries the client-generated cart session id.
	SessionHeader = "X-Session-ID"
	// SessionQueryParam is the query string alternative to SessionHeader.
	SessionQueryParam = "sessionId"

	sessionLocalsKey = "session_id"
)

// ResolveSession stores the caller's session id, if any, in the Fiber context.
// The header wins over the query parameter. Session ids are opaque and
// identify a cart, not a user. The value is copied out of the request buffer
// because it outlives the request once stored.
func ResolveSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := strings.TrimSpace(c.Get(SessionHeader))
		if sessionID == "" {
			sessionID = strings.TrimSpace(c.Query(SessionQueryParam))
		}
		if sessionID != "" {
			c.Locals(sessionLocalsKey, utils.CopyString(sessionID))
		}
		return c.Next()
	}
}

// SessionRequired rejects requests that carry no session id.
// It must run after ResolveSession.
func SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if SessionFromContext(c) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Session ID is required",
				"error":   "provide the " + SessionHeader + " header or the " + SessionQueryParam + " query parameter",
			})
		}
		return c.Next()
	}
}

// SessionFromContext returns the session id resolved for this request, or "".
func SessionFromContext(c *fiber.Ctx) string {
	sessionID, _ := c.Locals(sessionLocalsKey).(string)
	return sessionID
}

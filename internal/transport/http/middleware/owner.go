package middleware

import "github.com/gofiber/fiber/v2"

const (
	// OwnerHeader identifies the browser session that owns a task. There is
	// no account system; the fingerprint is the whole identity.
	OwnerHeader = "X-Browser-Fingerprint"

	// OwnerLocal is the fiber locals key the handlers read.
	OwnerLocal = "owner"

	defaultOwner = "unknown"
)

// Owner extracts the fingerprint header into request locals, defaulting for
// clients that do not send one.
func Owner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner := c.Get(OwnerHeader)
		if owner == "" {
			owner = defaultOwner
		}
		c.Locals(OwnerLocal, owner)
		return c.Next()
	}
}

// OwnerFrom reads the fingerprint a prior Owner middleware stored.
func OwnerFrom(c *fiber.Ctx) string {
	if owner, ok := c.Locals(OwnerLocal).(string); ok && owner != "" {
		return owner
	}
	return defaultOwner
}

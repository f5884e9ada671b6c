package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// RequireAdmin ensures the authenticated identity holds the admin
// capability. It is mounted after the strict auth handler, never instead of
// it, so authentication failures surface as 401 before this check runs.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !identity.IsAdmin {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}

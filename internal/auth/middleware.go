package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

const identityKey = "auth_identity"

// AuthMiddleware validates bearer tokens and attaches identities. The admin
// sentinel subject carries no user row, so identities come from verified
// claims alone.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Missing, malformed,
// expired or forged tokens are all rejected as unauthenticated.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	identity, err := m.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// HandleOptional attaches an identity when a valid bearer token is present
// and otherwise lets the request proceed anonymously. Guests submit
// complaints through this path; an invalid token degrades to guest rather
// than failing the request.
func (m *AuthMiddleware) HandleOptional(c *fiber.Ctx) error {
	if identity, err := m.resolve(c); err == nil {
		c.Locals(identityKey, identity)
	}
	return c.Next()
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*domain.Identity, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}

	return &domain.Identity{SubjectID: claims.Subject, IsAdmin: claims.IsAdmin}, nil
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

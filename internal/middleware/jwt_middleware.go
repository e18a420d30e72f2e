package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/pkg/apperrors"
)

const (
	userIDKey = "user_id"
	userKey   = "user"
)

// IdentityVerifier turns a session token into the subject id it was issued for.
type IdentityVerifier interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// UserLoader resolves the stored user row for a subject.
type UserLoader interface {
	CurrentUser(ctx context.Context, subject string) (*models.User, error)
	RequireAdmin(ctx context.Context, subject string) (*models.User, error)
}

// AuthRequired accepts the session cookie or an "Authorization: Bearer" header
// and stores the verified subject for later handlers.
func AuthRequired(verifier IdentityVerifier, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := SessionToken(c, cookieName)
		if token == "" {
			return apperrors.New(apperrors.CodeUnauthorized, "Unauthorized")
		}

		subject, err := verifier.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(userIDKey, subject)
		return c.Next()
	}
}

// LoadUser loads the caller's user row. It must run after AuthRequired.
func LoadUser(loader UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := loader.CurrentUser(c.UserContext(), UserID(c))
		if err != nil {
			return err
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

// AdminRequired re-reads the caller's user row and rejects non-admins before
// the route handler touches the request body.
func AdminRequired(loader UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := loader.RequireAdmin(c.UserContext(), UserID(c))
		if err != nil {
			return err
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

// SessionToken returns the bearer token if present, else the session cookie.
func SessionToken(c *fiber.Ctx, cookieName string) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Cookies(cookieName)
}

// UserID returns the authenticated subject, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// CurrentUser returns the user loaded by LoadUser or AdminRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

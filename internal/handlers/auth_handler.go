package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/services"
	"storefront/pkg/logger"
)

// CookieConfig controls the session cookie set after login.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles the login redirect flow and the current-user endpoint.
type AuthHandler struct {
	authService *services.AuthService
	cookie      CookieConfig
	logg        *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, cookie CookieConfig, logg *logger.Logger) *AuthHandler {
	if logg == nil {
		logg = logger.Nop()
	}
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logg:        logg,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, g Guards) {
	router.Get("/auth/user", g.Authenticated, g.User, h.HandleCurrentUser)
	router.Get("/login", h.HandleLogin)
	router.Get("/callback", h.HandleCallback)
	router.Get("/logout", h.HandleLogout)
}

func (h *AuthHandler) HandleCurrentUser(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// HandleLogin redirects the browser to the identity provider.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	target, err := h.authService.BeginLogin(c.UserContext())
	if err != nil {
		return fail(err, "Failed to start login")
	}
	return c.Redirect(target, fiber.StatusFound)
}

// HandleCallback completes the provider round trip and sets the session cookie.
func (h *AuthHandler) HandleCallback(c *fiber.Ctx) error {
	token, user, err := h.authService.CompleteLogin(c.UserContext(), c.Query("state"), c.Query("code"))
	if err != nil {
		return fail(err, "Failed to complete login")
	}
	h.logg.Info(h.logg.WithUserID(c.UserContext(), user.ID), "auth.login")

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.authService.TokenTTL()),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/", fiber.StatusFound)
}

// HandleLogout revokes the session and clears the cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if token := middleware.SessionToken(c, h.cookie.Name); token != "" {
		if err := h.authService.Logout(c.UserContext(), token); err != nil {
			return fail(err, "Failed to log out")
		}
	}
	c.ClearCookie(h.cookie.Name)
	return c.Redirect("/", fiber.StatusFound)
}

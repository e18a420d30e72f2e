package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/services"
)

type WishlistHandler struct {
	service  *services.WishlistService
	validate *validator.Validate
}

func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *WishlistHandler) RegisterRoutes(router fiber.Router, g Guards) {
	wishlistRoutes := router.Group("/wishlist", g.Authenticated)
	wishlistRoutes.Get("/", h.HandleList)
	wishlistRoutes.Post("/", h.HandleAdd)
	wishlistRoutes.Delete("/:id", h.HandleRemove)
}

func (h *WishlistHandler) HandleList(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return fail(err, "Failed to fetch wishlist")
	}
	return c.JSON(items)
}

func (h *WishlistHandler) HandleAdd(c *fiber.Ctx) error {
	var in services.AddToWishlistInput
	if err := parseBody(c, h.validate, &in, "Invalid wishlist data"); err != nil {
		return err
	}
	item, err := h.service.Add(c.UserContext(), middleware.UserID(c), in)
	if err != nil {
		return fail(err, "Failed to add to wishlist")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *WishlistHandler) HandleRemove(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.UserContext(), middleware.UserID(c), id); err != nil {
		return fail(err, "Failed to remove from wishlist")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

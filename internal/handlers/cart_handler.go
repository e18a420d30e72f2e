package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/services"
	"storefront/pkg/apperrors"
)

type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the cart routes. Every route acts on the caller's
// own cart.
func (h *CartHandler) RegisterRoutes(router fiber.Router, g Guards) {
	cartRoutes := router.Group("/cart", g.Authenticated)
	cartRoutes.Get("/", h.HandleList)
	cartRoutes.Get("/summary", h.HandleSummary)
	cartRoutes.Post("/", h.HandleAdd)
	cartRoutes.Put("/:id", h.HandleUpdate)
	cartRoutes.Delete("/:id", h.HandleRemove)
	cartRoutes.Delete("/", h.HandleClear)
}

func (h *CartHandler) HandleList(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return fail(err, "Failed to fetch cart")
	}
	return c.JSON(items)
}

func (h *CartHandler) HandleSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return fail(err, "Failed to fetch cart")
	}
	return c.JSON(summary)
}

func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	var in services.AddToCartInput
	if err := parseBody(c, h.validate, &in, "Invalid cart data"); err != nil {
		return err
	}
	item, err := h.service.Add(c.UserContext(), middleware.UserID(c), in)
	if err != nil {
		return fail(err, "Failed to add to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *CartHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperrors.Invalid("Invalid quantity")
	}
	item, err := h.service.UpdateQuantity(c.UserContext(), middleware.UserID(c), id, body.Quantity)
	if err != nil {
		return fail(err, "Failed to update cart item")
	}
	return c.JSON(item)
}

func (h *CartHandler) HandleRemove(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.UserContext(), middleware.UserID(c), id); err != nil {
		return fail(err, "Failed to remove from cart")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext(), middleware.UserID(c)); err != nil {
		return fail(err, "Failed to clear cart")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
)

type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router, g Guards) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Post("/", g.Authenticated, g.Admin, h.HandleCreate)
	categoryRoutes.Put("/:id", g.Authenticated, g.Admin, h.HandleUpdate)
	categoryRoutes.Delete("/:id", g.Authenticated, g.Admin, h.HandleDelete)
}

func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return fail(err, "Failed to fetch categories")
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var in models.Category
	if err := parseBody(c, h.validate, &in, "Invalid category data"); err != nil {
		return err
	}
	category, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return fail(err, "Failed to create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in services.UpdateCategoryInput
	if err := parseBody(c, h.validate, &in, "Invalid category data"); err != nil {
		return err
	}
	category, err := h.service.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(err, "Failed to update category")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return fail(err, "Failed to delete category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

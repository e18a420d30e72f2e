package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/services"
)

type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *ReviewHandler) RegisterRoutes(router fiber.Router, g Guards) {
	router.Get("/products/:id/reviews", h.HandleList)
	router.Post("/products/:id/reviews", g.Authenticated, h.HandleCreate)
	router.Delete("/reviews/:id", g.Authenticated, g.User, h.HandleDelete)
}

func (h *ReviewHandler) HandleList(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	reviews, err := h.service.List(c.UserContext(), productID)
	if err != nil {
		return fail(err, "Failed to fetch reviews")
	}
	return c.JSON(reviews)
}

func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in services.ReviewInput
	if err := parseBody(c, h.validate, &in, "Invalid review data"); err != nil {
		return err
	}
	review, err := h.service.Create(c.UserContext(), middleware.UserID(c), productID, in)
	if err != nil {
		return fail(err, "Failed to create review")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return fail(err, "Failed to delete review")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

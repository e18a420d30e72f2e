package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/services"
	"storefront/pkg/apperrors"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, g Guards) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", g.Authenticated, g.User, h.HandleGetOrders)
	orderRoutes.Get("/:id", g.Authenticated, g.User, h.HandleGetOrderByID)
	orderRoutes.Post("/", g.Authenticated, h.HandleCreateOrder)
	orderRoutes.Put("/:id/status", g.Authenticated, g.Admin, h.HandleUpdateOrderStatus)
}

// HandleGetOrders returns every order to admins and the caller's own orders
// to everyone else.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return fail(err, "Failed to fetch orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.service.Get(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(err, "Failed to fetch order")
	}
	return c.JSON(order)
}

// HandleCreateOrder places an order for the caller from
// {"order": {...}, "items": [...]}.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var in services.PlaceOrderInput
	if err := parseBody(c, h.validate, &in, "Invalid order data"); err != nil {
		return err
	}
	order, err := h.service.Place(c.UserContext(), middleware.UserID(c), in)
	if err != nil {
		return fail(err, "Failed to create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in services.UpdateStatusInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Invalid("Invalid status")
	}
	order, err := h.service.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return fail(err, "Failed to update order status")
	}
	return c.JSON(order)
}

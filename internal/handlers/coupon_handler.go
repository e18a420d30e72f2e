package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"storefront/internal/services"
	"storefront/pkg/apperrors"
)

type CouponHandler struct {
	service  *services.CouponService
	validate *validator.Validate
}

func NewCouponHandler(service *services.CouponService) *CouponHandler {
	return &CouponHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *CouponHandler) RegisterRoutes(router fiber.Router, g Guards) {
	couponRoutes := router.Group("/coupons")
	couponRoutes.Get("/:code", h.HandleValidate)
	couponRoutes.Post("/", g.Authenticated, g.Admin, h.HandleCreate)
}

// HandleValidate checks a coupon code. With ?subtotal= it also enforces the
// minimum order amount and reports the discount.
func (h *CouponHandler) HandleValidate(c *fiber.Ctx) error {
	var subtotal *decimal.Decimal
	if raw := c.Query("subtotal"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() {
			return apperrors.Invalid("Invalid query", apperrors.FieldError{
				Field: "subtotal", Tag: "numeric", Message: "must be a non-negative amount",
			})
		}
		subtotal = &parsed
	}
	coupon, err := h.service.Validate(c.UserContext(), c.Params("code"), subtotal)
	if err != nil {
		return fail(err, "Failed to fetch coupon")
	}
	return c.JSON(coupon)
}

func (h *CouponHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.CouponInput
	if err := parseBody(c, h.validate, &in, "Invalid coupon data"); err != nil {
		return err
	}
	coupon, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return fail(err, "Failed to create coupon")
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/apperrors"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes. Reads are public; writes
// require an admin.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, g Guards) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/slug/:slug", h.HandleGetProductBySlug)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", g.Authenticated, g.Admin, h.HandleCreateProduct)
	productRoutes.Put("/:id", g.Authenticated, g.Admin, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", g.Authenticated, g.Admin, h.HandleDeleteProduct)
}

// HandleGetProducts lists active products filtered by
// ?categoryId&search&featured&limit&offset.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	filter, err := productFilter(c)
	if err != nil {
		return err
	}
	products, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return fail(err, "Failed to fetch products")
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return fail(err, "Failed to fetch product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleGetProductBySlug(c *fiber.Ctx) error {
	product, err := h.service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(err, "Failed to fetch product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in services.CreateProductInput
	if err := parseBody(c, h.validate, &in, "Invalid product data"); err != nil {
		return err
	}
	product, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return fail(err, "Failed to create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in services.UpdateProductInput
	if err := parseBody(c, h.validate, &in, "Invalid product data"); err != nil {
		return err
	}
	product, err := h.service.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(err, "Failed to update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return fail(err, "Failed to delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func productFilter(c *fiber.Ctx) (repositories.ProductFilter, error) {
	filter := repositories.ProductFilter{
		Search:       c.Query("search"),
		FeaturedOnly: c.Query("featured") == "true",
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, invalidQuery("categoryId")
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}
	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, invalidQuery(name)
		}
		*dst = n
	}
	return filter, nil
}

func invalidQuery(name string) error {
	return apperrors.Invalid("Invalid query", apperrors.FieldError{
		Field:   name,
		Tag:     "numeric",
		Message: "must be a non-negative integer",
	})
}

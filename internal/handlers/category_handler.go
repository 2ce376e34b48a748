package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CatalogService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CatalogService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Get("/:name/products", h.HandleGetCategoryProducts)
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, "Category not found", err)
	}
	return c.JSON(category)
}

// HandleGetCategoryProducts lists the products whose category matches :name, ignoring case.
func (h *CategoryHandler) HandleGetCategoryProducts(c *fiber.Ctx) error {
	products, err := h.service.ListByCategory(c.UserContext(), c.Params("name"))
	if err != nil {
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products, search and deals.
type ProductHandler struct {
	service *services.CatalogService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	router.Get("/search", h.HandleSearch)

	dealRoutes := router.Group("/deals")
	dealRoutes.Get("/", h.HandleGetDeals)
	dealRoutes.Get("/flash", h.HandleGetFlashDeals)
}

// HandleGetProducts lists products, optionally narrowed by ?category=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if category := c.Query("category"); category != "" {
		products, err := h.service.ListByCategory(ctx, category)
		if err != nil {
			return respondError(c, "Could not retrieve products", err)
		}
		return c.JSON(products)
	}

	products, err := h.service.ListProducts(ctx)
	if err != nil {
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, "Product not found", err)
	}
	return c.JSON(product)
}

// HandleSearch matches ?q= against name, description and brand.
func (h *ProductHandler) HandleSearch(c *fiber.Ctx) error {
	products, err := h.service.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, "Search failed", err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetDeals(c *fiber.Ctx) error {
	products, err := h.service.ListDeals(c.UserContext())
	if err != nil {
		return respondError(c, "Could not retrieve deals", err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetFlashDeals(c *fiber.Ctx) error {
	products, err := h.service.ListFlashDeals(c.UserContext())
	if err != nil {
		return respondError(c, "Could not retrieve flash deals", err)
	}
	return c.JSON(products)
}

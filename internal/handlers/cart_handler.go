package handlers

import (
	"fmt"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, validate *validator.Validate) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
// Routes that read or clear a whole cart need a session id.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", middleware.SessionRequired(), h.HandleGetCart)
	cartRoutes.Get("/items", middleware.SessionRequired(), h.HandleGetCartItems)
	cartRoutes.Get("/summary", middleware.SessionRequired(), h.HandleGetCartSummary)
	cartRoutes.Get("/:id", h.HandleGetCartItem)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Patch("/:id", h.HandleUpdateCartItem)
	cartRoutes.Delete("/:id", h.HandleRemoveCartItem)
	cartRoutes.Delete("/", middleware.SessionRequired(), h.HandleClearCart)
}

// HandleGetCart returns the raw cart rows for the session.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.service.ListCart(c.UserContext(), middleware.SessionFromContext(c))
	if err != nil {
		return respondError(c, "Could not retrieve cart", err)
	}
	return c.JSON(items)
}

// HandleGetCartItems returns the cart rows joined with their products.
func (h *CartHandler) HandleGetCartItems(c *fiber.Ctx) error {
	items, err := h.service.ListCartWithProducts(c.UserContext(), middleware.SessionFromContext(c))
	if err != nil {
		return respondError(c, "Could not retrieve cart", err)
	}
	return c.JSON(items)
}

// HandleGetCartItem returns one cart row by its ID.
func (h *CartHandler) HandleGetCartItem(c *fiber.Ctx) error {
	item, err := h.service.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, "Cart item not found", err)
	}
	return c.JSON(item)
}

func (h *CartHandler) HandleGetCartSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), middleware.SessionFromContext(c))
	if err != nil {
		return respondError(c, "Could not compute cart summary", err)
	}
	return c.JSON(summary)
}

// HandleAddToCart adds a product to the cart, merging with an existing line.
// The body's sessionId takes precedence over the header.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req models.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if strings.TrimSpace(req.SessionID) == "" {
		req.SessionID = middleware.SessionFromContext(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	item, err := h.service.AddToCart(c.UserContext(), req.SessionID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, "Could not add item to cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *CartHandler) HandleUpdateCartItem(c *fiber.Ctx) error {
	var req models.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	item, err := h.service.UpdateQuantity(c.UserContext(), c.Params("id"), req.Quantity)
	if err != nil {
		return respondError(c, "Could not update cart item", err)
	}
	return c.JSON(item)
}

func (h *CartHandler) HandleRemoveCartItem(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := h.service.RemoveItem(c.UserContext(), id)
	if err != nil {
		return respondError(c, "Could not remove cart item", err)
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Cart item with ID %s not found", id),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	removed, err := h.service.ClearCart(c.UserContext(), middleware.SessionFromContext(c))
	if err != nil {
		return respondError(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{"success": true, "removed": removed})
}

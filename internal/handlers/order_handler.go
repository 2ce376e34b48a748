package handlers

import (
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, validate *validator.Validate) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", middleware.SessionRequired(), h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// HandleGetOrders lists the orders placed from the caller's session.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrdersBySession(c.UserContext(), middleware.SessionFromContext(c))
	if err != nil {
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, "Order not found", err)
	}
	return c.JSON(order)
}

// HandleCreateOrder places an order from the request items, or from the
// session's cart when the request has none.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if strings.TrimSpace(req.SessionID) == "" {
		req.SessionID = middleware.SessionFromContext(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	order, err := h.service.PlaceOrder(c.UserContext(), req)
	if err != nil {
		return respondError(c, "Could not create order", err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

package handlers

import (
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService, validate *validator.Validate) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/:productId", h.HandleGetReviews)
	reviewRoutes.Post("/", h.HandleCreateReview)
}

func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListByProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return respondError(c, "Could not retrieve reviews", err)
	}
	return c.JSON(reviews)
}

func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req models.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	review, err := h.service.AddReview(c.UserContext(), req.ProductID, req.Rating, req.Comment, req.ReviewerName)
	if err != nil {
		return respondError(c, "Could not create review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

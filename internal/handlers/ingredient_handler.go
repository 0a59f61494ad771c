package handlers

import (
	"errors"
	"log"

	"recipebook/internal/repositories"
	"recipebook/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// IngredientHandler handles HTTP requests for ingredients.
type IngredientHandler struct {
	service  *services.IngredientService
	validate *validator.Validate
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(service *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the ingredient routes with the Fiber app.
func (h *IngredientHandler) RegisterRoutes(router fiber.Router) {
	ingredientRoutes := router.Group("/ingredients")
	ingredientRoutes.Get("/", h.HandleList)
	ingredientRoutes.Post("/", h.HandleCreate)
	ingredientRoutes.Patch("/:id", h.HandleUpdate)
	ingredientRoutes.Delete("/:id", h.HandleDelete)
}

// CreateIngredientRequest represents the request body for creating an
// ingredient. Quantity defaults to zero when absent.
type CreateIngredientRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Quantity decimal.Decimal `json:"quantity"`
}

// UpdateIngredientRequest represents a partial ingredient update.
type UpdateIngredientRequest struct {
	Name     *string          `json:"name" validate:"omitempty,max=255"`
	Quantity *decimal.Decimal `json:"quantity"`
}

// HandleList retrieves the acting user's ingredients, ordered by name.
// "assigned_only=1" restricts to ingredients attached to at least one
// recipe.
func (h *IngredientHandler) HandleList(c *fiber.Ctx) error {
	assignedOnly := c.Query("assigned_only") == "1"

	ingredients, err := h.service.List(currentUserID(c), assignedOnly)
	if err != nil {
		log.Printf("Error listing ingredients: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve ingredients",
			"error":   err.Error(),
		})
	}

	return c.JSON(newIngredientResponses(ingredients))
}

// HandleCreate creates an ingredient owned by the acting user.
func (h *IngredientHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	ingredient, err := h.service.Create(currentUserID(c), req.Name, req.Quantity)
	if err != nil {
		log.Printf("Error creating ingredient: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create ingredient",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(newIngredientResponse(*ingredient))
}

// HandleUpdate patches an ingredient.
func (h *IngredientHandler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundResponse(c)
	}

	var req UpdateIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	ingredient, err := h.service.Update(currentUserID(c), id, req.Name, req.Quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFoundResponse(c)
		}
		log.Printf("Error updating ingredient %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update ingredient",
			"error":   err.Error(),
		})
	}

	return c.JSON(newIngredientResponse(*ingredient))
}

// HandleDelete deletes an ingredient.
func (h *IngredientHandler) HandleDelete(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundResponse(c)
	}

	if err := h.service.Delete(currentUserID(c), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFoundResponse(c)
		}
		log.Printf("Error deleting ingredient %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete ingredient",
			"error":   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

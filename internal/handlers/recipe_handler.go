package handlers

import (
	"errors"
	"log"

	"recipebook/internal/repositories"
	"recipebook/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the recipe routes with the Fiber app.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router) {
	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Get("/", h.HandleList)
	recipeRoutes.Post("/", h.HandleCreate)
	recipeRoutes.Get("/:id", h.HandleGet)
	recipeRoutes.Put("/:id", h.HandleUpdate)
	recipeRoutes.Patch("/:id", h.HandleUpdate)
	recipeRoutes.Delete("/:id", h.HandleDelete)
	recipeRoutes.Post("/:id/upload-image", h.HandleUploadImage)
}

// HandleList retrieves the acting user's recipes. The optional "tags"
// and "ingredients" query parameters are comma-separated integer ID
// lists.
func (h *RecipeHandler) HandleList(c *fiber.Ctx) error {
	var filter repositories.RecipeFilter

	if raw := c.Query("tags"); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid tags parameter",
				"error":   err.Error(),
			})
		}
		filter.TagIDs = ids
	}
	if raw := c.Query("ingredients"); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid ingredients parameter",
				"error":   err.Error(),
			})
		}
		filter.IngredientIDs = ids
	}

	recipes, err := h.service.List(currentUserID(c), filter)
	if err != nil {
		log.Printf("Error listing recipes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve recipes",
			"error":   err.Error(),
		})
	}

	return c.JSON(newRecipeResponses(recipes))
}

// HandleCreate creates a recipe owned by the acting user.
func (h *RecipeHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.RecipeInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create recipe request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	recipe, err := h.service.Create(currentUserID(c), input)
	if err != nil {
		log.Printf("Error creating recipe: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create recipe",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(newRecipeDetailResponse(*recipe))
}

// HandleGet retrieves a single recipe.
func (h *RecipeHandler) HandleGet(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundResponse(c)
	}

	recipe, err := h.service.Get(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFoundResponse(c)
		}
		log.Printf("Error getting recipe %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve recipe",
			"error":   err.Error(),
		})
	}

	return c.JSON(newRecipeDetailResponse(*recipe))
}

// HandleUpdate applies a partial (PATCH) or full (PUT) update. Any
// client-supplied owner field is ignored: the owner is write-once at
// creation. When the tags or ingredients field is present the relation
// set is fully replaced.
func (h *RecipeHandler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundResponse(c)
	}

	var input services.RecipeUpdateInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update recipe request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if c.Method() == fiber.MethodPut {
		if input.Title == nil || input.TimeMinutes == nil || input.Price == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors": fiber.Map{
					"title":        "title, time_minutes and price are required for a full update",
					"time_minutes": "title, time_minutes and price are required for a full update",
					"price":        "title, time_minutes and price are required for a full update",
				},
			})
		}
	}

	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	recipe, err := h.service.Update(currentUserID(c), id, input)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFoundResponse(c)
		}
		log.Printf("Error updating recipe %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update recipe",
			"error":   err.Error(),
		})
	}

	return c.JSON(newRecipeDetailResponse(*recipe))
}

// HandleDelete deletes a recipe.
func (h *RecipeHandler) HandleDelete(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundResponse(c)
	}

	if err := h.service.Delete(currentUserID(c), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFoundResponse(c)
		}
		log.Printf("Error deleting recipe %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete recipe",
			"error":   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadImage accepts a multipart "image" field, validates it is
// a decodable image and stores it for the recipe.
func (h *RecipeHandler) HandleUploadImage(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundResponse(c)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read image file",
			"error":   err.Error(),
		})
	}
	defer file.Close()

	recipe, err := h.service.SaveImage(currentUserID(c), id, file, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFoundResponse(c)
		}
		if errors.Is(err, services.ErrNotImage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid image payload",
				"error":   err.Error(),
			})
		}
		log.Printf("Error uploading image for recipe %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store image",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"id":    recipe.ID,
		"image": recipe.Image,
	})
}

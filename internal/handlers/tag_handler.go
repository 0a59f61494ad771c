package handlers

import (
	"errors"
	"log"

	"recipebook/internal/repositories"
	"recipebook/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service  *services.TagService
	validate *validator.Validate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service *services.TagService) *TagHandler {
	return &TagHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the tag routes with the Fiber app.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	tagRoutes := router.Group("/tags")
	tagRoutes.Get("/", h.HandleList)
	tagRoutes.Post("/", h.HandleCreate)
	tagRoutes.Patch("/:id", h.HandleUpdate)
	tagRoutes.Delete("/:id", h.HandleDelete)
}

// TagRequest represents the request body for creating or renaming a tag.
type TagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// HandleList retrieves the acting user's tags, ordered by name.
// "assigned_only=1" restricts to tags attached to at least one recipe.
func (h *TagHandler) HandleList(c *fiber.Ctx) error {
	assignedOnly := c.Query("assigned_only") == "1"

	tags, err := h.service.List(currentUserID(c), assignedOnly)
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve tags",
			"error":   err.Error(),
		})
	}

	return c.JSON(newTagResponses(tags))
}

// HandleCreate creates a tag owned by the acting user.
func (h *TagHandler) HandleCreate(c *fiber.Ctx) error {
	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	tag, err := h.service.Create(currentUserID(c), req.Name)
	if err != nil {
		log.Printf("Error creating tag: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create tag",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(newTagResponse(*tag))
}

// HandleUpdate renames a tag.
func (h *TagHandler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundResponse(c)
	}

	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	tag, err := h.service.Update(currentUserID(c), id, req.Name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFoundResponse(c)
		}
		log.Printf("Error updating tag %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update tag",
			"error":   err.Error(),
		})
	}

	return c.JSON(newTagResponse(*tag))
}

// HandleDelete deletes a tag.
func (h *TagHandler) HandleDelete(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundResponse(c)
	}

	if err := h.service.Delete(currentUserID(c), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFoundResponse(c)
		}
		log.Printf("Error deleting tag %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete tag",
			"error":   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

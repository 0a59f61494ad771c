package services

import (
	"encoding/json"
	"io"
	"log"

	"recipebook/internal/models"
	"recipebook/internal/repositories"
	"recipebook/internal/storage"
	"recipebook/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// ErrNotImage is returned when an image upload cannot be decoded.
var ErrNotImage = storage.ErrNotImage

// TagInput describes a tag in a nested recipe payload.
type TagInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// IngredientInput describes an ingredient in a nested recipe payload.
// Quantity is optional; when present it participates in the
// existing-row match.
type IngredientInput struct {
	Name     string           `json:"name" validate:"required,max=255"`
	Quantity *decimal.Decimal `json:"quantity"`
}

// RecipeInput carries the fields for creating a recipe. The owner is
// never part of the payload; it is always the acting user.
type RecipeInput struct {
	Title       string            `json:"title" validate:"required,max=255"`
	TimeMinutes int               `json:"time_minutes" validate:"gte=0"`
	Price       decimal.Decimal   `json:"price"`
	Description string            `json:"description"`
	Link        string            `json:"link" validate:"omitempty,max=255"`
	Tags        []TagInput        `json:"tags" validate:"omitempty,dive"`
	Ingredients []IngredientInput `json:"ingredients" validate:"omitempty,dive"`
}

// RecipeUpdateInput carries a partial update. Nil fields are left
// untouched. A non-nil Tags or Ingredients slice (even an empty one)
// replaces the whole relation set.
type RecipeUpdateInput struct {
	Title       *string            `json:"title" validate:"omitempty,max=255"`
	TimeMinutes *int               `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *decimal.Decimal   `json:"price"`
	Description *string            `json:"description"`
	Link        *string            `json:"link" validate:"omitempty,max=255"`
	Tags        *[]TagInput        `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]IngredientInput `json:"ingredients" validate:"omitempty,dive"`
}

// RecipeService handles business logic for recipes, including nested
// tag/ingredient reconciliation and image upload.
type RecipeService struct {
	recipeRepo     repositories.RecipeRepository
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
	media          *storage.MediaStore
	mqClient       *rabbitmq.Client
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	tagRepo repositories.TagRepository,
	ingredientRepo repositories.IngredientRepository,
	media *storage.MediaStore,
	mqClient *rabbitmq.Client,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		media:          media,
		mqClient:       mqClient,
	}
}

// List retrieves the user's recipes, optionally filtered by tag or
// ingredient IDs.
func (s *RecipeService) List(userID uint, filter repositories.RecipeFilter) ([]models.Recipe, error) {
	return s.recipeRepo.ListByOwner(userID, filter)
}

// Get retrieves a single recipe owned by the user.
func (s *RecipeService) Get(userID, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByIDForOwner(userID, id)
}

// Create creates a recipe owned by the user and reconciles its nested
// tag and ingredient descriptors.
func (s *RecipeService) Create(userID uint, input RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Description: input.Description,
		Link:        input.Link,
		UserID:      userID,
	}
	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	if err := s.reconcileTags(userID, recipe, input.Tags); err != nil {
		return nil, err
	}
	if err := s.reconcileIngredients(userID, recipe, input.Ingredients); err != nil {
		return nil, err
	}

	s.publishEvent("recipe.created", recipe)

	return s.recipeRepo.GetByIDForOwner(userID, recipe.ID)
}

// Update applies a partial or full update to the user's recipe. A
// recipe owned by another user is reported as not found. When the tags
// or ingredients field is present, the existing relation set is cleared
// and rebuilt from the payload.
func (s *RecipeService) Update(userID, id uint, input RecipeUpdateInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByIDForOwner(userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		recipe.Title = *input.Title
	}
	if input.TimeMinutes != nil {
		recipe.TimeMinutes = *input.TimeMinutes
	}
	if input.Price != nil {
		recipe.Price = *input.Price
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.Link != nil {
		recipe.Link = *input.Link
	}

	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}

	if input.Tags != nil {
		if err := s.reconcileTags(userID, recipe, *input.Tags); err != nil {
			return nil, err
		}
	}
	if input.Ingredients != nil {
		if err := s.reconcileIngredients(userID, recipe, *input.Ingredients); err != nil {
			return nil, err
		}
	}

	return s.recipeRepo.GetByIDForOwner(userID, recipe.ID)
}

// Delete removes the user's recipe.
func (s *RecipeService) Delete(userID, id uint) error {
	return s.recipeRepo.Delete(userID, id)
}

// SaveImage validates and stores an uploaded image for the user's
// recipe, replacing any previous one.
func (s *RecipeService) SaveImage(userID, id uint, file io.Reader, originalName string) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByIDForOwner(userID, id)
	if err != nil {
		return nil, err
	}

	path, err := s.media.SaveImage(file, originalName)
	if err != nil {
		return nil, err
	}

	previous := recipe.Image
	recipe.Image = path
	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}

	if previous != "" {
		if err := s.media.Remove(previous); err != nil {
			log.Printf("Warning: failed to remove replaced image %s: %v", previous, err)
		}
	}

	s.publishEvent("recipe.image_uploaded", recipe)

	return recipe, nil
}

// reconcileTags resolves each descriptor to an existing-or-new tag
// owned by the user and swaps the recipe's tag set for the result.
// Attaching the same resolved row twice is a no-op.
func (s *RecipeService) reconcileTags(userID uint, recipe *models.Recipe, inputs []TagInput) error {
	tags := make([]models.Tag, 0, len(inputs))
	seen := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		tag, err := s.tagRepo.GetOrCreate(userID, in.Name)
		if err != nil {
			return err
		}
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		tags = append(tags, *tag)
	}
	return s.recipeRepo.ReplaceTags(recipe, tags)
}

// reconcileIngredients mirrors reconcileTags for ingredients, matching
// on every provided descriptor field.
func (s *RecipeService) reconcileIngredients(userID uint, recipe *models.Recipe, inputs []IngredientInput) error {
	ingredients := make([]models.Ingredient, 0, len(inputs))
	seen := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		ingredient, err := s.ingredientRepo.GetOrCreate(userID, in.Name, in.Quantity)
		if err != nil {
			return err
		}
		if seen[ingredient.ID] {
			continue
		}
		seen[ingredient.ID] = true
		ingredients = append(ingredients, *ingredient)
	}
	return s.recipeRepo.ReplaceIngredients(recipe, ingredients)
}

// publishEvent emits a recipe event to RabbitMQ. Publishing is best
// effort; failures are logged, never surfaced to the caller.
func (s *RecipeService) publishEvent(eventType string, recipe *models.Recipe) {
	if s.mqClient == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"recipe_id": recipe.ID,
		"user_id":   recipe.UserID,
		"title":     recipe.Title,
	})
	if err != nil {
		log.Printf("Failed to marshal recipe event: %v", err)
		return
	}

	if err := s.mqClient.Publish(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event for recipe %d: %v", eventType, recipe.ID, err)
	}
}

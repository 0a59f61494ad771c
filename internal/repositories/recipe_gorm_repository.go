package repositories

import (
	"errors"
	"fmt"

	"recipebook/internal/models"

	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

// ListByOwner retrieves the owner's recipes, optionally narrowed by tag
// or ingredient IDs, ordered by descending ID and de-duplicated.
func (r *GORMRecipeRepository) ListByOwner(ownerID uint, filter RecipeFilter) ([]models.Recipe, error) {
	q := r.db.Model(&models.Recipe{}).Where("recipes.user_id = ?", ownerID)

	if len(filter.TagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []models.Recipe
	err := q.Distinct("recipes.*").
		Order("recipes.id DESC").
		Preload("Tags").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetByIDForOwner retrieves a single recipe with its tags and
// ingredients. A recipe owned by another user is reported as not found.
func (r *GORMRecipeRepository) GetByIDForOwner(ownerID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Preload("Tags").Preload("Ingredients").
		First(&recipe, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe by ID %d: %w", id, err)
	}
	return &recipe, nil
}

// Create creates a new recipe. Relation sets are managed separately via
// ReplaceTags/ReplaceIngredients, so they are omitted here.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe) error {
	if err := r.db.Omit("Tags", "Ingredients", "User").Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update updates an existing recipe's own columns.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe) error {
	res := r.db.Omit("Tags", "Ingredients", "User").Save(recipe)
	if res.Error != nil {
		return fmt.Errorf("failed to update recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the owner's recipe by ID.
func (r *GORMRecipeRepository) Delete(ownerID, id uint) error {
	res := r.db.Where("user_id = ?", ownerID).Delete(&models.Recipe{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceTags swaps the recipe's tag set for the given one. An empty
// set clears all links.
func (r *GORMRecipeRepository) ReplaceTags(recipe *models.Recipe, tags []models.Tag) error {
	assoc := r.db.Model(recipe).Association("Tags")
	if len(tags) == 0 {
		if err := assoc.Clear(); err != nil {
			return fmt.Errorf("failed to clear recipe tags: %w", err)
		}
		return nil
	}
	if err := assoc.Replace(tags); err != nil {
		return fmt.Errorf("failed to replace recipe tags: %w", err)
	}
	return nil
}

// ReplaceIngredients swaps the recipe's ingredient set for the given one.
func (r *GORMRecipeRepository) ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error {
	assoc := r.db.Model(recipe).Association("Ingredients")
	if len(ingredients) == 0 {
		if err := assoc.Clear(); err != nil {
			return fmt.Errorf("failed to clear recipe ingredients: %w", err)
		}
		return nil
	}
	if err := assoc.Replace(ingredients); err != nil {
		return fmt.Errorf("failed to replace recipe ingredients: %w", err)
	}
	return nil
}

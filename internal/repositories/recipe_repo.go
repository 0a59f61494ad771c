package repositories

import "recipebook/internal/models"

// RecipeFilter narrows a recipe listing. Each ID list matches recipes
// linked to any of the given rows; both lists, when present, apply as
// independent constraints.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository defines the interface for recipe data access.
// Every read and mutation is scoped to the owning user.
type RecipeRepository interface {
	ListByOwner(ownerID uint, filter RecipeFilter) ([]models.Recipe, error)
	GetByIDForOwner(ownerID, id uint) (*models.Recipe, error)
	Create(recipe *models.Recipe) error
	Update(recipe *models.Recipe) error
	Delete(ownerID, id uint) error
	ReplaceTags(recipe *models.Recipe, tags []models.Tag) error
	ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error
}

package repositories

import (
	"errors"
	"fmt"

	"recipebook/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMIngredientRepository is a GORM implementation of IngredientRepository.
type GORMIngredientRepository struct {
	db *gorm.DB
}

// NewGORMIngredientRepository creates a new instance of GORMIngredientRepository.
func NewGORMIngredientRepository(db *gorm.DB) *GORMIngredientRepository {
	return &GORMIngredientRepository{
		db: db,
	}
}

// ListByOwner retrieves the owner's ingredients ordered by name. With
// assignedOnly set, only ingredients linked to at least one live recipe
// are returned.
func (r *GORMIngredientRepository) ListByOwner(ownerID uint, assignedOnly bool) ([]models.Ingredient, error) {
	q := r.db.Model(&models.Ingredient{}).Where("ingredients.user_id = ?", ownerID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id AND recipes.deleted_at IS NULL")
	}

	var ingredients []models.Ingredient
	err := q.Distinct("ingredients.*").Order("ingredients.name ASC").Find(&ingredients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// GetByIDForOwner retrieves an ingredient; another user's row is not found.
func (r *GORMIngredientRepository) GetByIDForOwner(ownerID, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.First(&ingredient, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient by ID %d: %w", id, err)
	}
	return &ingredient, nil
}

// GetOrCreate resolves an ingredient scoped to the owner and every
// provided descriptor field, creating it when absent. Same get-or-create
// race caveat as tags.
func (r *GORMIngredientRepository) GetOrCreate(ownerID uint, name string, quantity *decimal.Decimal) (*models.Ingredient, error) {
	q := r.db.Where("user_id = ? AND name = ?", ownerID, name)
	if quantity != nil {
		q = q.Where("quantity = ?", *quantity)
	}

	var ingredient models.Ingredient
	err := q.First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up ingredient %q: %w", name, err)
	}

	ingredient = models.Ingredient{Name: name, UserID: ownerID}
	if quantity != nil {
		ingredient.Quantity = *quantity
	}
	if err := r.db.Create(&ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to create ingredient %q: %w", name, err)
	}
	return &ingredient, nil
}

// Create creates a new ingredient.
func (r *GORMIngredientRepository) Create(ingredient *models.Ingredient) error {
	if err := r.db.Create(ingredient).Error; err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

// Update persists changes to an existing ingredient.
func (r *GORMIngredientRepository) Update(ingredient *models.Ingredient) error {
	res := r.db.Save(ingredient)
	if res.Error != nil {
		return fmt.Errorf("failed to update ingredient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the owner's ingredient by ID.
func (r *GORMIngredientRepository) Delete(ownerID, id uint) error {
	res := r.db.Where("user_id = ?", ownerID).Delete(&models.Ingredient{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete ingredient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

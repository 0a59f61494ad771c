package repositories

import (
	"recipebook/internal/models"

	"github.com/shopspring/decimal"
)

// IngredientRepository defines the interface for ingredient data
// access, scoped to the owning user.
type IngredientRepository interface {
	ListByOwner(ownerID uint, assignedOnly bool) ([]models.Ingredient, error)
	GetByIDForOwner(ownerID, id uint) (*models.Ingredient, error)
	GetOrCreate(ownerID uint, name string, quantity *decimal.Decimal) (*models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
	Update(ingredient *models.Ingredient) error
	Delete(ownerID, id uint) error
}

package services

import (
	"recipebook/internal/models"
	"recipebook/internal/repositories"

	"github.com/shopspring/decimal"
)

// IngredientService handles business logic for user-owned ingredients.
type IngredientService struct {
	repo repositories.IngredientRepository
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(repo repositories.IngredientRepository) *IngredientService {
	return &IngredientService{
		repo: repo,
	}
}

// List retrieves the user's ingredients, optionally restricted to
// ingredients assigned to at least one recipe.
func (s *IngredientService) List(userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	return s.repo.ListByOwner(userID, assignedOnly)
}

// Create creates an ingredient owned by the user.
func (s *IngredientService) Create(userID uint, name string, quantity decimal.Decimal) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{Name: name, Quantity: quantity, UserID: userID}
	if err := s.repo.Create(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Update patches the user's ingredient. Nil fields are left untouched;
// another user's row is not found.
func (s *IngredientService) Update(userID, id uint, name *string, quantity *decimal.Decimal) (*models.Ingredient, error) {
	ingredient, err := s.repo.GetByIDForOwner(userID, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		ingredient.Name = *name
	}
	if quantity != nil {
		ingredient.Quantity = *quantity
	}
	if err := s.repo.Update(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Delete removes the user's ingredient.
func (s *IngredientService) Delete(userID, id uint) error {
	return s.repo.Delete(userID, id)
}

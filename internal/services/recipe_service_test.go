package services_test

import (
	"testing"

	"recipebook/internal/models"
	"recipebook/internal/repositories"
	"recipebook/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRecipeRepository is a mock implementation of repositories.RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) ListByOwner(ownerID uint, filter repositories.RecipeFilter) ([]models.Recipe, error) {
	args := m.Called(ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetByIDForOwner(ownerID, id uint) (*models.Recipe, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Create(recipe *models.Recipe) error {
	args := m.Called(recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(recipe *models.Recipe) error {
	args := m.Called(recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ownerID, id uint) error {
	args := m.Called(ownerID, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceTags(recipe *models.Recipe, tags []models.Tag) error {
	args := m.Called(recipe, tags)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceIngredients(recipe *models.Recipe, ingredients []models.Ingredient) error {
	args := m.Called(recipe, ingredients)
	return args.Error(0)
}

// MockTagRepository is a mock implementation of repositories.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) ListByOwner(ownerID uint, assignedOnly bool) ([]models.Tag, error) {
	args := m.Called(ownerID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByIDForOwner(ownerID, id uint) (*models.Tag, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetOrCreate(ownerID uint, name string) (*models.Tag, error) {
	args := m.Called(ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) Create(tag *models.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) Update(tag *models.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ownerID, id uint) error {
	args := m.Called(ownerID, id)
	return args.Error(0)
}

// MockIngredientRepository is a mock implementation of repositories.IngredientRepository
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) ListByOwner(ownerID uint, assignedOnly bool) ([]models.Ingredient, error) {
	args := m.Called(ownerID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) GetByIDForOwner(ownerID, id uint) (*models.Ingredient, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) GetOrCreate(ownerID uint, name string, quantity *decimal.Decimal) (*models.Ingredient, error) {
	args := m.Called(ownerID, name, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) Create(ingredient *models.Ingredient) error {
	args := m.Called(ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) Update(ingredient *models.Ingredient) error {
	args := m.Called(ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) Delete(ownerID, id uint) error {
	args := m.Called(ownerID, id)
	return args.Error(0)
}

func newRecipeServiceWithMocks() (*services.RecipeService, *MockRecipeRepository, *MockTagRepository, *MockIngredientRepository) {
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)
	service := services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, nil, nil)
	return service, recipeRepo, tagRepo, ingredientRepo
}

func tagWithID(id uint, name string, userID uint) *models.Tag {
	tag := &models.Tag{Name: name, UserID: userID}
	tag.ID = id
	return tag
}

func TestRecipeService_Create_ReconcilesRelations(t *testing.T) {
	service, recipeRepo, tagRepo, ingredientRepo := newRecipeServiceWithMocks()

	recipeRepo.On("Create", mock.AnythingOfType("*models.Recipe")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Recipe).ID = 10
	}).Return(nil).Once()

	tagRepo.On("GetOrCreate", uint(1), "Vegan").Return(tagWithID(5, "Vegan", 1), nil).Once()
	tagRepo.On("GetOrCreate", uint(1), "Dinner").Return(tagWithID(6, "Dinner", 1), nil).Once()

	quantity := decimal.NewFromInt(2)
	ingredient := &models.Ingredient{Name: "Salt", Quantity: quantity, UserID: 1}
	ingredient.ID = 8
	ingredientRepo.On("GetOrCreate", uint(1), "Salt", &quantity).Return(ingredient, nil).Once()

	recipeRepo.On("ReplaceTags", mock.AnythingOfType("*models.Recipe"), mock.MatchedBy(func(tags []models.Tag) bool {
		return len(tags) == 2 && tags[0].ID == 5 && tags[1].ID == 6
	})).Return(nil).Once()
	recipeRepo.On("ReplaceIngredients", mock.AnythingOfType("*models.Recipe"), mock.MatchedBy(func(ingredients []models.Ingredient) bool {
		return len(ingredients) == 1 && ingredients[0].ID == 8
	})).Return(nil).Once()

	created := &models.Recipe{Title: "Stew", UserID: 1}
	created.ID = 10
	recipeRepo.On("GetByIDForOwner", uint(1), uint(10)).Return(created, nil).Once()

	recipe, err := service.Create(1, services.RecipeInput{
		Title:       "Stew",
		TimeMinutes: 30,
		Price:       decimal.NewFromFloat(5.25),
		Tags:        []services.TagInput{{Name: "Vegan"}, {Name: "Dinner"}},
		Ingredients: []services.IngredientInput{{Name: "Salt", Quantity: &quantity}},
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(10), recipe.ID)
	recipeRepo.AssertExpectations(t)
	tagRepo.AssertExpectations(t)
	ingredientRepo.AssertExpectations(t)
}

func TestRecipeService_Create_DeduplicatesDescriptors(t *testing.T) {
	service, recipeRepo, tagRepo, _ := newRecipeServiceWithMocks()

	recipeRepo.On("Create", mock.AnythingOfType("*models.Recipe")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Recipe).ID = 11
	}).Return(nil).Once()

	// Both descriptors resolve to the same row; attaching it twice is a no-op.
	tagRepo.On("GetOrCreate", uint(1), "Vegan").Return(tagWithID(5, "Vegan", 1), nil).Twice()

	recipeRepo.On("ReplaceTags", mock.AnythingOfType("*models.Recipe"), mock.MatchedBy(func(tags []models.Tag) bool {
		return len(tags) == 1 && tags[0].ID == 5
	})).Return(nil).Once()
	recipeRepo.On("ReplaceIngredients", mock.AnythingOfType("*models.Recipe"), mock.Anything).Return(nil).Once()

	reloaded := &models.Recipe{Title: "Soup", UserID: 1}
	reloaded.ID = 11
	recipeRepo.On("GetByIDForOwner", uint(1), uint(11)).Return(reloaded, nil).Once()

	_, err := service.Create(1, services.RecipeInput{
		Title: "Soup",
		Tags:  []services.TagInput{{Name: "Vegan"}, {Name: "Vegan"}},
	})

	assert.NoError(t, err)
	recipeRepo.AssertExpectations(t)
	tagRepo.AssertExpectations(t)
}

func TestRecipeService_Update_AbsentRelationsUntouched(t *testing.T) {
	service, recipeRepo, _, _ := newRecipeServiceWithMocks()

	existing := &models.Recipe{Title: "Old title", UserID: 1}
	existing.ID = 20
	recipeRepo.On("GetByIDForOwner", uint(1), uint(20)).Return(existing, nil).Twice()
	recipeRepo.On("Update", mock.AnythingOfType("*models.Recipe")).Return(nil).Once()

	newTitle := "New title"
	_, err := service.Update(1, 20, services.RecipeUpdateInput{Title: &newTitle})

	assert.NoError(t, err)
	assert.Equal(t, "New title", existing.Title)
	recipeRepo.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything)
	recipeRepo.AssertNotCalled(t, "ReplaceIngredients", mock.Anything, mock.Anything)
	recipeRepo.AssertExpectations(t)
}

func TestRecipeService_Update_EmptyTagListClearsLinks(t *testing.T) {
	service, recipeRepo, _, _ := newRecipeServiceWithMocks()

	existing := &models.Recipe{Title: "Stew", UserID: 1}
	existing.ID = 21
	recipeRepo.On("GetByIDForOwner", uint(1), uint(21)).Return(existing, nil).Twice()
	recipeRepo.On("Update", mock.AnythingOfType("*models.Recipe")).Return(nil).Once()
	recipeRepo.On("ReplaceTags", mock.AnythingOfType("*models.Recipe"), mock.MatchedBy(func(tags []models.Tag) bool {
		return len(tags) == 0
	})).Return(nil).Once()

	empty := []services.TagInput{}
	_, err := service.Update(1, 21, services.RecipeUpdateInput{Tags: &empty})

	assert.NoError(t, err)
	recipeRepo.AssertExpectations(t)
}

func TestRecipeService_Update_CrossOwnerNotFound(t *testing.T) {
	service, recipeRepo, _, _ := newRecipeServiceWithMocks()

	recipeRepo.On("GetByIDForOwner", uint(2), uint(20)).Return(nil, repositories.ErrNotFound).Once()

	newTitle := "hijack"
	_, err := service.Update(2, 20, services.RecipeUpdateInput{Title: &newTitle})

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	recipeRepo.AssertNotCalled(t, "Update", mock.Anything)
	recipeRepo.AssertExpectations(t)
}

func TestRecipeService_List_PassesFilter(t *testing.T) {
	service, recipeRepo, _, _ := newRecipeServiceWithMocks()

	filter := repositories.RecipeFilter{TagIDs: []uint{1, 2}, IngredientIDs: []uint{9}}
	recipeRepo.On("ListByOwner", uint(1), filter).Return([]models.Recipe{}, nil).Once()

	recipes, err := service.List(1, filter)
	assert.NoError(t, err)
	assert.Empty(t, recipes)
	recipeRepo.AssertExpectations(t)
}

func TestRecipeService_Delete(t *testing.T) {
	service, recipeRepo, _, _ := newRecipeServiceWithMocks()

	recipeRepo.On("Delete", uint(1), uint(30)).Return(nil).Once()
	assert.NoError(t, service.Delete(1, 30))

	recipeRepo.On("Delete", uint(2), uint(30)).Return(repositories.ErrNotFound).Once()
	assert.ErrorIs(t, service.Delete(2, 30), repositories.ErrNotFound)
	recipeRepo.AssertExpectations(t)
}

package handlers

import (
	"recipebook/internal/models"

	"github.com/shopspring/decimal"
)

// Response projections. The detail projection composes the list
// projection and adds fields, rather than the two sharing behavior.

type userResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ingredientResponse struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
}

type recipeResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
	Tags        []tagResponse   `json:"tags"`
}

type recipeDetailResponse struct {
	recipeResponse
	Ingredients []ingredientResponse `json:"ingredients"`
	Description string               `json:"description"`
	Image       string               `json:"image"`
}

func newUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func newTagResponse(t models.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name}
}

func newTagResponses(tags []models.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, newTagResponse(t))
	}
	return out
}

func newIngredientResponse(i models.Ingredient) ingredientResponse {
	return ingredientResponse{ID: i.ID, Name: i.Name, Quantity: i.Quantity}
}

func newIngredientResponses(ingredients []models.Ingredient) []ingredientResponse {
	out := make([]ingredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, newIngredientResponse(i))
	}
	return out
}

func newRecipeResponse(r models.Recipe) recipeResponse {
	return recipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        newTagResponses(r.Tags),
	}
}

func newRecipeResponses(recipes []models.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, newRecipeResponse(r))
	}
	return out
}

func newRecipeDetailResponse(r models.Recipe) recipeDetailResponse {
	return recipeDetailResponse{
		recipeResponse: newRecipeResponse(r),
		Ingredients:    newIngredientResponses(r.Ingredients),
		Description:    r.Description,
		Image:          r.Image,
	}
}

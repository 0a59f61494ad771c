package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingredient is a user-owned ingredient with a fixed-point quantity.
type Ingredient struct {
	gorm.Model
	Name     string          `json:"name" gorm:"type:varchar(255)"`
	Quantity decimal.Decimal `json:"quantity" gorm:"type:decimal(5,2)"`
	UserID   uint            `json:"-" gorm:"not null;index"`
	User     User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Recipes  []Recipe        `json:"-" gorm:"many2many:recipe_ingredients;"`
}

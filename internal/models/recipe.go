package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recipe is owned by exactly one user. The owner is assigned at creation
// and never changed by client input.
type Recipe struct {
	gorm.Model
	Title       string          `json:"title" gorm:"type:varchar(255)"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(5,2)"`
	Description string          `json:"description" gorm:"type:text"`
	Link        string          `json:"link" gorm:"type:varchar(255)"`
	Image       string          `json:"image" gorm:"type:varchar(255)"` // media path, empty until uploaded
	UserID      uint            `json:"-" gorm:"not null;index"`
	User        User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tags        []Tag           `json:"tags" gorm:"many2many:recipe_tags;"`
	Ingredients []Ingredient    `json:"ingredients" gorm:"many2many:recipe_ingredients;"`
}

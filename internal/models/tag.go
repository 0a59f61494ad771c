package models

import "gorm.io/gorm"

// Tag is a user-owned label. No row-level uniqueness on (user, name);
// the reconciler matches an existing row or creates one.
type Tag struct {
	gorm.Model
	Name    string   `json:"name" gorm:"type:varchar(255)"`
	UserID  uint     `json:"-" gorm:"not null;index"`
	User    User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Recipes []Recipe `json:"-" gorm:"many2many:recipe_tags;"`
}

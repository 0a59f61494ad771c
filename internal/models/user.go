package models

import "gorm.io/gorm"

// User represents an account. Email is stored in normalized form.
type User struct {
	gorm.Model
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Name        string `json:"name" gorm:"type:varchar(255)"`
	Password    string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

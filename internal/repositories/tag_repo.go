package repositories

import "recipebook/internal/models"

// TagRepository defines the interface for tag data access, scoped to
// the owning user.
type TagRepository interface {
	ListByOwner(ownerID uint, assignedOnly bool) ([]models.Tag, error)
	GetByIDForOwner(ownerID, id uint) (*models.Tag, error)
	GetOrCreate(ownerID uint, name string) (*models.Tag, error)
	Create(tag *models.Tag) error
	Update(tag *models.Tag) error
	Delete(ownerID, id uint) error
}

package repositories

import (
	"errors"
	"fmt"

	"recipebook/internal/models"

	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// ListByOwner retrieves the owner's tags ordered by name. With
// assignedOnly set, only tags linked to at least one live recipe are
// returned.
func (r *GORMTagRepository) ListByOwner(ownerID uint, assignedOnly bool) ([]models.Tag, error) {
	q := r.db.Model(&models.Tag{}).Where("tags.user_id = ?", ownerID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id AND recipes.deleted_at IS NULL")
	}

	var tags []models.Tag
	err := q.Distinct("tags.*").Order("tags.name ASC").Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// GetByIDForOwner retrieves a tag; another user's tag is not found.
func (r *GORMTagRepository) GetByIDForOwner(ownerID, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tag by ID %d: %w", id, err)
	}
	return &tag, nil
}

// GetOrCreate resolves a tag by (owner, name), creating it when absent.
// Two concurrent calls for the same new name can both insert; no
// uniqueness constraint guards against that.
func (r *GORMTagRepository) GetOrCreate(ownerID uint, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("user_id = ? AND name = ?", ownerID, name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up tag %q: %w", name, err)
	}

	tag = models.Tag{Name: name, UserID: ownerID}
	if err := r.db.Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag %q: %w", name, err)
	}
	return &tag, nil
}

// Create creates a new tag.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if err := r.db.Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// Update persists changes to an existing tag.
func (r *GORMTagRepository) Update(tag *models.Tag) error {
	res := r.db.Save(tag)
	if res.Error != nil {
		return fmt.Errorf("failed to update tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the owner's tag by ID.
func (r *GORMTagRepository) Delete(ownerID, id uint) error {
	res := r.db.Where("user_id = ?", ownerID).Delete(&models.Tag{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

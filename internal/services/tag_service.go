package services

import (
	"recipebook/internal/models"
	"recipebook/internal/repositories"
)

// TagService handles business logic for user-owned tags.
type TagService struct {
	repo repositories.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(repo repositories.TagRepository) *TagService {
	return &TagService{
		repo: repo,
	}
}

// List retrieves the user's tags, optionally restricted to tags
// assigned to at least one recipe.
func (s *TagService) List(userID uint, assignedOnly bool) ([]models.Tag, error) {
	return s.repo.ListByOwner(userID, assignedOnly)
}

// Create creates a tag owned by the user.
func (s *TagService) Create(userID uint, name string) (*models.Tag, error) {
	tag := &models.Tag{Name: name, UserID: userID}
	if err := s.repo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Update renames the user's tag. Another user's tag is not found.
func (s *TagService) Update(userID, id uint, name string) (*models.Tag, error) {
	tag, err := s.repo.GetByIDForOwner(userID, id)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	if err := s.repo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete removes the user's tag.
func (s *TagService) Delete(userID, id uint) error {
	return s.repo.Delete(userID, id)
}

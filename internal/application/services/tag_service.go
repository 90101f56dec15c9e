package services

import (
	"context"

	"github.com/tripfolio/backend/internal/domain/entities"
	"github.com/tripfolio/backend/internal/domain/repositories"
	apperrors "github.com/tripfolio/backend/pkg/errors"
)

// TagService handles tag catalog management. Creation and deletion are
// admin operations; the route layer enforces that before calling in.
type TagService struct {
	tags repositories.TagRepository
}

// NewTagService creates a new tag service
func NewTagService(tags repositories.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// Create inserts a new tag
func (s *TagService) Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	if tag.Name == "" {
		return nil, apperrors.NewValidationError("tag name is required")
	}
	return s.tags.Create(ctx, tag)
}

// ListNames retrieves all tag names
func (s *TagService) ListNames(ctx context.Context) ([]string, error) {
	names, err := s.tags.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// GetByName retrieves a tag and the itineraries carrying it
func (s *TagService) GetByName(ctx context.Context, name string) (*entities.TagDetail, error) {
	return s.tags.GetByName(ctx, name)
}

// Delete removes a tag; itinerary associations cascade
func (s *TagService) Delete(ctx context.Context, id int64) error {
	return s.tags.Delete(ctx, id)
}

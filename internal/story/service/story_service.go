package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	autherror "github.com/storyverse/story-service/internal/errors"
	"github.com/storyverse/story-service/internal/story/domain"
	"github.com/storyverse/story-service/internal/story/dto"
)

type StoryService struct {
	repo domain.StoryRepository
}

func NewStoryService(repo domain.StoryRepository) *StoryService {
	return &StoryService{repo: repo}
}

func (s *StoryService) List(ctx context.Context) ([]domain.Story, error) {
	return s.repo.List(ctx)
}

func (s *StoryService) Get(ctx context.Context, id string) (*domain.Story, error) {
	if _, err := uuid.Parse(id); err != nil {
		// A malformed id names nothing, same as an unknown one.
		return nil, autherror.ErrStoryNotFound
	}

	story, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, autherror.ErrStoryNotFound
	}

	return story, nil
}

// Create persists a new story owned by the caller. The owner comes from the
// authenticated identity, never from the payload.
func (s *StoryService) Create(ctx context.Context, ownerID, ownerUsername string, input dto.StoryInput) (*domain.Story, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()

	story := &domain.Story{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		OwnerUsername: ownerUsername,
		Title:         input.Title,
		Content:       input.Content,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, story); err != nil {
		return nil, err
	}

	return story, nil
}

// Update rewrites a story's content on behalf of its owner. A story owned
// by a different identity is reported as not found.
func (s *StoryService) Update(ctx context.Context, id, callerID string, input dto.StoryInput) (*domain.Story, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, autherror.ErrStoryNotFound
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	story := &domain.Story{
		ID:        id,
		OwnerID:   callerID,
		Title:     input.Title,
		Content:   input.Content,
		UpdatedAt: time.Now(),
	}

	updated, err := s.repo.UpdateIfOwner(ctx, story)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, autherror.ErrStoryNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes a story on behalf of its owner, with the same not-found
// behavior as Update.
func (s *StoryService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return autherror.ErrStoryNotFound
	}

	deleted, err := s.repo.DeleteIfOwner(ctx, id, callerID)
	if err != nil {
		return err
	}
	if !deleted {
		return autherror.ErrStoryNotFound
	}

	return nil
}

func validateInput(input dto.StoryInput) error {
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", autherror.ErrValidation)
	}
	if input.Content == "" {
		return fmt.Errorf("%w: content is required", autherror.ErrValidation)
	}
	return nil
}
